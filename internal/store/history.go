package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizcraft/internal/history"
	"github.com/abhisek/quizcraft/internal/quiz"
)

// historyRepo stores completed quizzes. The document and answers are kept
// as JSON so a quiz can be reviewed later exactly as it was taken.
type historyRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

const historyColumns = `id, session_id, title, topic, difficulty, model, score, total,
	document, answers, started_at, completed_at`

func (r *historyRepo) AppendQuiz(ctx context.Context, rec *history.Record) error {
	doc, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("marshal quiz document: %w", err)
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO quiz_history (sequence, session_id, title, topic, difficulty, model,
			score, total, document, answers, started_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, rec.SessionID, rec.Title, rec.Topic, string(rec.Difficulty), rec.Model,
		rec.Score, rec.Total, string(doc), string(answers),
		unixMilli(rec.StartedAt), unixMilli(rec.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("save quiz history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("quiz history id: %w", err)
	}
	rec.ID = id
	return nil
}

func (r *historyRepo) ListQuizzes(ctx context.Context, limit int) ([]history.Record, error) {
	query := `SELECT ` + historyColumns + ` FROM quiz_history ORDER BY completed_at DESC, sequence DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz history: %w", err)
	}
	defer rows.Close()

	var out []history.Record
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) GetQuiz(ctx context.Context, id int64) (*history.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+historyColumns+` FROM quiz_history WHERE id = ?`, id)
	rec, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *historyRepo) ClearQuizzes(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quiz_history`)
	if err != nil {
		return 0, fmt.Errorf("clear quiz history: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHistory(s scanner) (*history.Record, error) {
	var (
		rec                    history.Record
		difficulty             string
		doc, answers           string
		startedAt, completedAt int64
	)
	err := s.Scan(&rec.ID, &rec.SessionID, &rec.Title, &rec.Topic, &difficulty, &rec.Model,
		&rec.Score, &rec.Total, &doc, &answers, &startedAt, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan quiz history: %w", err)
	}

	rec.Difficulty = quiz.Difficulty(difficulty)
	rec.StartedAt = fromUnixMilli(startedAt)
	rec.CompletedAt = fromUnixMilli(completedAt)

	if err := json.Unmarshal([]byte(doc), &rec.Document); err != nil {
		return nil, fmt.Errorf("decode quiz %d document: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("decode quiz %d answers: %w", rec.ID, err)
	}
	return &rec, nil
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
