package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{
			name:    "valid title",
			title:   "Clean Architecture",
			wantErr: false,
		},
		{
			name:    "valid single character",
			title:   "X",
			wantErr: false,
		},
		{
			name:    "valid title at max length",
			title:   strings.Repeat("a", 500),
			wantErr: false,
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: true,
		},
		{
			name:    "title exceeds max length",
			title:   strings.Repeat("a", 501),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAuthor(t *testing.T) {
	tests := []struct {
		name    string
		author  string
		wantErr bool
	}{
		{
			name:    "valid author",
			author:  "Robert C. Martin",
			wantErr: false,
		},
		{
			name:    "valid author at max length",
			author:  strings.Repeat("a", 255),
			wantErr: false,
		},
		{
			name:    "empty author",
			author:  "",
			wantErr: true,
		},
		{
			name:    "author exceeds max length",
			author:  strings.Repeat("a", 256),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAuthor(tt.author)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAuthor(%q) error = %v, wantErr %v", tt.author, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name    string
		price   int64
		wantErr bool
	}{
		{
			name:    "valid price",
			price:   2980,
			wantErr: false,
		},
		{
			name:    "zero price is valid",
			price:   0,
			wantErr: false,
		},
		{
			name:    "price at upper bound",
			price:   10_000_000,
			wantErr: false,
		},
		{
			name:    "negative price",
			price:   -1,
			wantErr: true,
		},
		{
			name:    "price above upper bound",
			price:   10_000_001,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrice(tt.price)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePrice(%d) error = %v, wantErr %v", tt.price, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrice_ReturnsValidationError(t *testing.T) {
	err := ValidatePrice(-100)
	if err == nil {
		t.Fatal("expected error for negative price")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Field != "price" {
		t.Errorf("Field = %q, want %q", vErr.Field, "price")
	}
}

func TestValidateBook(t *testing.T) {
	tests := []struct {
		name    string
		book    *Book
		wantErr bool
	}{
		{
			name: "valid book",
			book: &Book{
				Title:  "Designing Data-Intensive Applications",
				Author: "Martin Kleppmann",
				Price:  5280,
			},
			wantErr: false,
		},
		{
			name:    "nil book",
			book:    nil,
			wantErr: true,
		},
		{
			name: "missing title",
			book: &Book{
				Author: "Martin Kleppmann",
				Price:  5280,
			},
			wantErr: true,
		},
		{
			name: "missing author",
			book: &Book{
				Title: "Designing Data-Intensive Applications",
				Price: 5280,
			},
			wantErr: true,
		},
		{
			name: "negative price",
			book: &Book{
				Title:  "Designing Data-Intensive Applications",
				Author: "Martin Kleppmann",
				Price:  -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBook(tt.book)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBook() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
