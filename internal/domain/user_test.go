package domain

import (
	"strings"
	"testing"
)

func TestValidateUserName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"ok", "alice", nil},
		{"max length", strings.Repeat("x", MaxUserNameLen), nil},
		{"empty", "", ErrUserNameEmpty},
		{"too long", strings.Repeat("x", MaxUserNameLen+1), ErrUserNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateUserName(tt.input); err != tt.wantErr {
				t.Errorf("ValidateUserName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRoomName(t *testing.T) {
	tests := []struct {
		name    string
		input   RoomName
		wantErr error
	}{
		{"ok", "general", nil},
		{"empty", "", ErrRoomNameEmpty},
		{"too long", RoomName(strings.Repeat("r", MaxRoomNameLen+1)), ErrRoomNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateRoomName(tt.input); err != tt.wantErr {
				t.Errorf("ValidateRoomName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	if err := ValidateMessage("hello"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateMessage(""); err != ErrMessageEmpty {
		t.Errorf("expected ErrMessageEmpty, got %v", err)
	}
	if err := ValidateMessage(strings.Repeat("m", MaxMessageLen+1)); err != ErrMessageTooLong {
		t.Errorf("expected ErrMessageTooLong, got %v", err)
	}
}
