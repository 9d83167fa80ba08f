package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// applyEnvOverrides walks the config struct and replaces any field whose
// `env` tag names a set environment variable. Nested structs are walked
// recursively; fields without a tag, or whose variable is unset, keep
// their file or default value.
func applyEnvOverrides(target interface{}) error {
	value := reflect.ValueOf(target)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	structType := value.Type()
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		varName := structType.Field(i).Tag.Get("env")
		if varName == "" {
			continue
		}
		raw, set := os.LookupEnv(varName)
		if !set {
			continue
		}

		if err := overrideField(field, raw); err != nil {
			return fmt.Errorf("env var %s: %w", varName, err)
		}
	}

	return nil
}

// overrideField parses raw into the field's kind. time.Duration fields
// take duration syntax ("12h"), not a bare integer.
func overrideField(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return fmt.Errorf("field is not settable")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("expected a duration: %w", err)
			}
			field.Set(reflect.ValueOf(parsed))
			return nil
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("expected an integer: %w", err)
		}
		field.SetInt(parsed)

	case reflect.Bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("expected a boolean: %w", err)
		}
		field.SetBool(parsed)

	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("expected a number: %w", err)
		}
		field.SetFloat(parsed)

	default:
		return fmt.Errorf("cannot override %s fields", field.Kind())
	}

	return nil
}
