package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/boratech/exportdesk/pkg/repository"
)

var (
	errNotFound  = errors.New("record not found")
	errDuplicate = errors.New("record already exists")
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil passes through", err: nil, want: nil},
		{name: "no rows maps to not found", err: sql.ErrNoRows, want: errNotFound},
		{
			name: "wrapped no rows maps to not found",
			err:  fmt.Errorf("query invoice: %w", sql.ErrNoRows),
			want: errNotFound,
		},
		{
			name: "unique violation maps to duplicate",
			err:  &pgconn.PgError{Code: "23505"},
			want: errDuplicate,
		},
		{
			name: "other pg error passes through",
			err:  &pgconn.PgError{Code: "23503"},
		},
		{
			name: "unrelated error passes through",
			err:  errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)

			if tt.want != nil || tt.err == nil {
				if !errors.Is(got, tt.want) && got != tt.want {
					t.Errorf("MapError() = %v, want %v", got, tt.want)
				}
				return
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("MapError() = %v, want original %v", got, tt.err)
			}
		})
	}
}
