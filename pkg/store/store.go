// Package store persists inference runs and their posterior estimates in
// sqlite, with a btree-backed index of recently touched runs consulted
// before the database.
package store

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"seqinfer/pkg/common"
	"seqinfer/pkg/monitor"
	"seqinfer/pkg/observer"
	"seqinfer/pkg/sequence"
)

type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	recent *RunIndex
	stats  *monitor.InferenceStats
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		ord INTEGER NOT NULL,
		nitem INTEGER NOT NULL,
		policy INTEGER NOT NULL,
		decay REAL NOT NULL,
		win INTEGER NOT NULL,
		prior_weight REAL NOT NULL,
		seq TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS estimates (
		run_id INTEGER NOT NULL,
		pattern TEXT NOT NULL,
		pos INTEGER NOT NULL,
		mean REAL,
		map REAL,
		sd REAL,
		PRIMARY KEY (run_id, pattern, pos)
	);`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragma: %w", err)
	}

	return &Store{
		db:     db,
		recent: NewRunIndex(8),
		stats:  monitor.NewInferenceStats(),
	}, nil
}

func (s *Store) Stats() *monitor.InferenceStats {
	return s.stats
}

// SaveRun writes the run parameters and every per-pattern estimate row in
// one transaction. NaN and Inf estimates are stored as NULL. The assigned
// id is written back into run.ID and returned.
func (s *Store) SaveRun(run *common.Run, est *observer.Estimate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(
		"INSERT INTO runs (created_at, ord, nitem, policy, decay, win, prior_weight, seq) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		run.CreatedAt.Unix(), run.Order, run.Nitem, int(run.Policy), run.Decay, run.Window, run.PriorWeight, run.Seq.String())
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	stmt, err := tx.Prepare("INSERT INTO estimates (run_id, pattern, pos, mean, map, sd) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	space := est.Space
	for i := 0; i < space.Size(); i++ {
		pattern := space.Pattern(i).String()
		for t := range est.Mean[i] {
			if _, err := stmt.Exec(id, pattern, t,
				nullable(est.Mean[i][t]), nullable(est.MAP[i][t]), nullable(est.SD[i][t])); err != nil {
				tx.Rollback()
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	run.ID = id
	s.recent.Put(run)
	s.stats.RecordRun()
	s.stats.RecordObservations(len(run.Seq))
	return id, nil
}

// LoadRun returns the parameters of a stored run, serving from the
// recent-run index when possible.
func (s *Store) LoadRun(id int64) (*common.Run, error) {
	if run, ok := s.recent.Get(id); ok {
		s.stats.RecordCacheHit()
		return run, nil
	}

	row := s.db.QueryRow("SELECT id, created_at, ord, nitem, policy, decay, win, prior_weight, seq FROM runs WHERE id = ?", id)
	run := &common.Run{}
	var createdAt int64
	var policy int
	var seqText string
	if err := row.Scan(&run.ID, &createdAt, &run.Order, &run.Nitem, &policy, &run.Decay, &run.Window, &run.PriorWeight, &seqText); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %d not found", id)
		}
		return nil, err
	}
	run.CreatedAt = time.Unix(createdAt, 0)
	run.Policy = common.Policy(policy)
	seq, err := sequence.Parse(seqText)
	if err != nil {
		return nil, fmt.Errorf("run %d has a corrupt sequence: %w", id, err)
	}
	run.Seq = seq

	s.recent.Put(run)
	return run, nil
}

// ListRuns calls fn for every stored run in ascending id order until fn
// returns false.
func (s *Store) ListRuns(fn func(run *common.Run) bool) error {
	rows, err := s.db.Query("SELECT id FROM runs ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		run, err := s.LoadRun(id)
		if err != nil {
			return err
		}
		if !fn(run) {
			return nil
		}
	}
	return rows.Err()
}

// EstimateRow is one stored posterior estimate. NULL columns (stored
// indeterminate forms) come back as NaN.
type EstimateRow struct {
	Pattern string
	Pos     int
	Mean    float64
	MAP     float64
	SD      float64
}

// Estimates returns the stored estimates of a run, optionally filtered to
// one pattern (empty pattern means all), ordered by pattern then position.
func (s *Store) Estimates(runID int64, pattern string) ([]EstimateRow, error) {
	query := "SELECT pattern, pos, mean, map, sd FROM estimates WHERE run_id = ?"
	args := []interface{}{runID}
	if pattern != "" {
		query += " AND pattern = ?"
		args = append(args, pattern)
	}
	query += " ORDER BY pattern, pos"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EstimateRow
	for rows.Next() {
		var r EstimateRow
		var mean, mp, sd sql.NullFloat64
		if err := rows.Scan(&r.Pattern, &r.Pos, &mean, &mp, &sd); err != nil {
			return nil, err
		}
		r.Mean = fromNullable(mean)
		r.MAP = fromNullable(mp)
		r.SD = fromNullable(sd)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() {
	s.db.Close()
}

func nullable(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func fromNullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
