package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/englishclub/academy/internal/app/models"
)

func filterContext(t *testing.T, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/payments?"+query, nil)
	return ctx, rec
}

func TestPaymentFilterRejectsUnknownStatus(t *testing.T) {
	controller := &PaymentController{}

	// Non-canonical values must fail loudly instead of matching nothing.
	for _, status := range []string{"pagado", "paid", "DONE"} {
		ctx, rec := filterContext(t, "status="+status)
		if _, ok := controller.paymentFilter(ctx); ok {
			t.Errorf("status %q accepted, want rejection", status)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %q: code = %d, want 400", status, rec.Code)
		}
	}
}

func TestPaymentFilterAcceptsCanonicalStatus(t *testing.T) {
	controller := &PaymentController{}

	ctx, _ := filterContext(t, "status=OVERDUE&month=3")
	filter, ok := controller.paymentFilter(ctx)
	if !ok {
		t.Fatal("canonical status rejected")
	}
	if filter.Status != models.PaymentOverdue {
		t.Errorf("status = %s, want OVERDUE", filter.Status)
	}
	if filter.Month == nil || *filter.Month != 3 {
		t.Errorf("month = %v, want 3", filter.Month)
	}
}
