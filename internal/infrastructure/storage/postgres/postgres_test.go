package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestStartupRepository_GetStartupProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStartupRepository(db, time.Second)

	payload := `{"id":"st_1","name":"Foo Inc","industry":"Fintech","mrr":12000,"founders":[{"first_name":"Awa","last_name":"Diop","role":"CEO"}]}`
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT get_user_startup_data($1, $2)`)).
		WithArgs("u_1", "st_1").
		WillReturnRows(sqlmock.NewRows([]string{"get_user_startup_data"}).AddRow([]byte(payload)))

	profile, err := repo.GetStartupProfile(context.Background(), "u_1", "st_1")
	require.NoError(t, err)

	assert.Equal(t, "Foo Inc", profile.Name)
	assert.Equal(t, 12000.0, profile.MRR)
	require.Len(t, profile.Founders, 1)
	assert.Equal(t, "Awa Diop", profile.Founders[0].FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartupRepository_ArrayPayload(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStartupRepository(db, 0)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT get_user_startup_data($1, $2)`)).
		WithArgs("u_1", "st_2").
		WillReturnRows(sqlmock.NewRows([]string{"get_user_startup_data"}).AddRow([]byte(`[{"name":"Bar"}]`)))

	profile, err := repo.GetStartupProfile(context.Background(), "u_1", "st_2")
	require.NoError(t, err)
	assert.Equal(t, "Bar", profile.Name)
	assert.Equal(t, "st_2", profile.ID)
}

func TestStartupRepository_NotFound(t *testing.T) {
	for _, payload := range []any{nil, []byte("null"), []byte("[]")} {
		db, mock := newMockDB(t)
		repo := NewStartupRepository(db, time.Second)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT get_user_startup_data($1, $2)`)).
			WillReturnRows(sqlmock.NewRows([]string{"get_user_startup_data"}).AddRow(payload))

		_, err := repo.GetStartupProfile(context.Background(), "u_1", "missing")
		assert.ErrorIs(t, err, entity.ErrNotFound)
	}
}

func TestStartupRepository_GetAgentSettings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStartupRepository(db, time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT get_user_agent_settings($1)`)).
		WithArgs("u_1").
		WillReturnRows(sqlmock.NewRows([]string{"get_user_agent_settings"}).
			AddRow([]byte(`{"preferred_tone":"friendly","custom_instructions":"Be brief","permission_level":"pro"}`)))

	settings, err := repo.GetAgentSettings(context.Background(), "u_1")
	require.NoError(t, err)
	assert.Equal(t, entity.AgentSettings{PreferredTone: "friendly", CustomInstructions: "Be brief", PermissionLevel: "pro"}, *settings)
}

func TestStartupRepository_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStartupRepository(db, time.Second)

	boom := errors.New("connection refused")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT get_user_agent_settings($1)`)).WillReturnError(boom)

	_, err := repo.GetAgentSettings(context.Background(), "u_1")
	assert.ErrorIs(t, err, boom)
}

func TestTargetRepository_GetTarget(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTargetRepository(db, time.Second)

	columns := []string{"id", "name", "application_url", "form_type", "type"}
	mock.ExpectQuery(`SELECT id, name, application_url, form_type, type\s+FROM targets\s+WHERE id = \$1`).
		WithArgs("tg_1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("tg_1", "Acme", "https://forms.gle/x", "google", "fund"))
	mock.ExpectQuery(`FROM targets`).
		WithArgs("tg_2").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("tg_2", "Beta", "https://beta.vc", nil, nil))

	target, err := repo.GetTarget(context.Background(), "tg_1")
	require.NoError(t, err)
	require.NotNil(t, target.FormType)
	assert.Equal(t, "google", *target.FormType)
	assert.Equal(t, "fund", target.Type)

	target, err = repo.GetTarget(context.Background(), "tg_2")
	require.NoError(t, err)
	assert.Nil(t, target.FormType)
	assert.Equal(t, "", target.Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTargetRepository_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTargetRepository(db, time.Second)

	mock.ExpectQuery(`FROM targets`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetTarget(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func sampleSubmission() *entity.Submission {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &entity.Submission{
		ID:          "sub_1",
		StartupID:   "st_1",
		TargetID:    "tg_1",
		Status:      entity.SubmissionInProgress,
		FormType:    entity.FormTypeGoogle,
		Engine:      "browseruse",
		SubmittedAt: at,
		UpdatedAt:   at,
	}
}

func TestSubmissionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubmissionRepository(db, time.Second)
	s := sampleSubmission()

	mock.ExpectExec(`INSERT INTO submissions`).
		WithArgs(s.ID, s.StartupID, s.TargetID, "in_progress", "google", "browseruse", "", "", "", s.SubmittedAt, s.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateSubmission(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_CreateConstraintErrors(t *testing.T) {
	tests := []struct {
		code pq.ErrorCode
		want error
	}{
		{uniqueViolation, ErrSubmissionExists},
		{foreignKeyViolation, entity.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewSubmissionRepository(db, time.Second)

			mock.ExpectExec(`INSERT INTO submissions`).WillReturnError(&pq.Error{Code: tt.code})

			err := repo.CreateSubmission(context.Background(), sampleSubmission())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmissionRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubmissionRepository(db, time.Second)
	s := sampleSubmission()
	s.Status = entity.SubmissionCompleted
	s.AgentNotes = "Thanks for applying"
	s.SessionID = "sess_9"

	mock.ExpectExec(`UPDATE submissions\s+SET status = \$2`).
		WithArgs(s.ID, "completed", "Thanks for applying", "sess_9", "", s.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateSubmission(context.Background(), s))

	mock.ExpectExec(`UPDATE submissions`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateSubmission(context.Background(), s), entity.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
