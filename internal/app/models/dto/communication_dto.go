package dto

// CreateCommunicationRequest represents a broadcast message. A nil
// courseId addresses every course. Omitting sendEmail means the
// message is emailed to tutors.
type CreateCommunicationRequest struct {
	CourseID  *string `json:"courseId"`
	Title     string  `json:"title" binding:"required"`
	Content   string  `json:"content" binding:"required"`
	SendEmail *bool   `json:"sendEmail"`
}

// CommunicationDeliveryResponse reports the email fan-out outcome
// alongside the stored message.
type CommunicationDeliveryResponse struct {
	Communication interface{} `json:"communication"`
	Recipients    int         `json:"recipients"`
	Sent          int         `json:"sent"`
	Failed        int         `json:"failed"`
	Errors        []string    `json:"errors,omitempty"`
}
