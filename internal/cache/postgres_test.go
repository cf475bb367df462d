package cache

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	return NewPostgresStore(db), mock, func() { _ = db.Close() }
}

func TestPostgresStore_Save(t *testing.T) {
	cases := []struct {
		name    string
		execErr error
		wantErr bool
	}{
		{name: "upsert ok"},
		{name: "db error", execErr: errors.New("db down"), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, mock, done := newMockStore(t)
			defer done()

			exp := mock.ExpectExec(`INSERT INTO query_cache .* ON CONFLICT \(cache_key\)`).
				WithArgs("recommendations", "{\n  \"name\": \"a\",\n  \"values\": null\n}")
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := s.Save(context.Background(), "recommendations", doc{Name: "a"})
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tc.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestPostgresStore_SaveEmptyKey(t *testing.T) {
	s, _, done := newMockStore(t)
	defer done()
	if err := s.Save(context.Background(), "", doc{}); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("want ErrInvalidKey, got %v", err)
	}
}

func TestPostgresStore_Load(t *testing.T) {
	selectQuery := regexp.QuoteMeta(`SELECT document FROM query_cache WHERE cache_key = $1`)

	cases := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		wantErr error
		want    string
	}{
		{
			name: "found",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectQuery).WithArgs("k").
					WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(`{"name":"a"}`)))
			},
			want: "a",
		},
		{
			name: "no rows",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectQuery).WithArgs("k").WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "malformed",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectQuery).WithArgs("k").
					WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(`{"name":`)))
			},
			wantErr: ErrMalformed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, mock, done := newMockStore(t)
			defer done()
			tc.setup(mock)

			var got doc
			err := s.Load(context.Background(), "k", &got)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil || got.Name != tc.want {
				t.Fatalf("unexpected got=%+v err=%v", got, err)
			}
		})
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectPing().WillReturnError(errors.New("ping failed"))
	if err := s.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
}
