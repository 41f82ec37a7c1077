package validator

import (
	"errors"
	"testing"

	"mizdooni/pkg/model"
)

func TestValidateUserID(t *testing.T) {
	v := NewReservationValidator()

	tests := []struct {
		id      string
		wantErr bool
	}{
		{"ali", false},
		{"ali.rezaei@example.com", false},
		{"user_42", false},
		{"", true},
		{"ali rezaei", true},
		{"<script>", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := v.ValidateUserID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateUserID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil {
				var verrs ValidationErrors
				if !errors.As(err, &verrs) || verrs[0].Field != "user_id" {
					t.Errorf("expected a user_id ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	v := NewReservationValidator()

	tests := []struct {
		name    string
		req     model.ReservationRequest
		wantErr bool
	}{
		{"valid", model.ReservationRequest{People: 4, DateTime: "2030-05-01 19:00"}, false},
		{"zero people is left to the engine", model.ReservationRequest{People: 0, DateTime: "2030-05-01 19:00"}, false},
		{"missing datetime", model.ReservationRequest{People: 2}, true},
		{"iso datetime", model.ReservationRequest{People: 2, DateTime: "2030-05-01T19:00:00Z"}, true},
		{"absurd party", model.ReservationRequest{People: 5000, DateTime: "2030-05-01 19:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
