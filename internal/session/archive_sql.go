package session

import (
	"context"
	"database/sql"
	"encoding/json"

	syncx "github.com/skillpath/analytics/internal/sync"
)

// SQLArchive persists finalized session results, and mirrors each one
// into the event log for downstream sync.
type SQLArchive struct {
	db     *sql.DB
	events *syncx.EventRepo
}

func NewSQLArchive(db *sql.DB) *SQLArchive {
	return &SQLArchive{db: db, events: syncx.NewEventRepo(db)}
}

func (a *SQLArchive) ArchiveSession(ctx context.Context, rec ArchiveRecord) error {
	weak, err := json.Marshal(rec.WeakAreas)
	if err != nil {
		return err
	}
	strong, err := json.Marshal(rec.StrongAreas)
	if err != nil {
		return err
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO session_archive
		   (session_id,user_id,language,final_score,total_questions,correct_answers,
		    skill_areas_assessed,weak_areas_json,strong_areas_json,started_at,finished_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (session_id) DO UPDATE SET
		   final_score=EXCLUDED.final_score,
		   total_questions=EXCLUDED.total_questions,
		   correct_answers=EXCLUDED.correct_answers,
		   skill_areas_assessed=EXCLUDED.skill_areas_assessed,
		   weak_areas_json=EXCLUDED.weak_areas_json,
		   strong_areas_json=EXCLUDED.strong_areas_json,
		   finished_at=EXCLUDED.finished_at`,
		rec.SessionID, rec.UserID, rec.Language, rec.FinalScore, rec.TotalQuestions,
		rec.CorrectAnswers, rec.SkillAreasAssessed, string(weak), string(strong),
		rec.StartedAt, rec.FinishedAt)
	if err != nil {
		return err
	}
	return a.events.AppendJSON(ctx, syncx.EventSessionFinalized, rec.SessionID, rec)
}
