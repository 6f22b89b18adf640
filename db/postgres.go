package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"eventgraph/models"
)

// PostgresSource reads the users, locations, events and participants tables.
type PostgresSource struct{ DB *sql.DB }

func OpenPostgres(dsn string) (*PostgresSource, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sql.Open")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, errors.Wrap(err, "postgres ping")
	}
	sqldb.SetMaxOpenConns(4)
	sqldb.SetMaxIdleConns(2)
	return &PostgresSource{DB: sqldb}, nil
}

func (s *PostgresSource) Close() error { return s.DB.Close() }

// CreateTables creates the seed tables if they are missing.
func CreateTables(ctx context.Context, sqldb *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS locations (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			"desc" TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			"desc" TEXT NOT NULL,
			date TEXT NOT NULL,
			"from" TEXT NOT NULL,
			"to" TEXT NOT NULL,
			location_id BIGINT NOT NULL,
			user_id BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			event_id BIGINT NOT NULL
		)`,
	}
	for _, q := range stmts {
		if _, err := sqldb.ExecContext(ctx, q); err != nil {
			return errors.Wrap(err, "create tables")
		}
	}
	return nil
}

func (s *PostgresSource) Load(ctx context.Context) (models.Dataset, error) {
	var ds models.Dataset
	var err error
	if ds.Users, err = s.users(ctx); err != nil {
		return ds, err
	}
	if ds.Locations, err = s.locations(ctx); err != nil {
		return ds, err
	}
	if ds.Events, err = s.events(ctx); err != nil {
		return ds, err
	}
	if ds.Participants, err = s.participants(ctx); err != nil {
		return ds, err
	}
	return ds, nil
}

func (s *PostgresSource) users(ctx context.Context) ([]models.User, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id::text, username, email FROM users ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query users")
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		var id string
		if err := rows.Scan(&id, &u.Username, &u.Email); err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		u.ID = models.ParseID(id)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresSource) locations(ctx context.Context) ([]models.Location, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id::text, name, "desc", lat, lng FROM locations ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query locations")
	}
	defer rows.Close()

	var out []models.Location
	for rows.Next() {
		var l models.Location
		var id string
		if err := rows.Scan(&id, &l.Name, &l.Desc, &l.Lat, &l.Lng); err != nil {
			return nil, errors.Wrap(err, "scan location")
		}
		l.ID = models.ParseID(id)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresSource) events(ctx context.Context) ([]models.Event, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id::text, title, "desc", date, "from", "to", location_id::text, user_id::text
		 FROM events ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var e models.Event
		var id, loc, user string
		if err := rows.Scan(&id, &e.Title, &e.Desc, &e.Date, &e.From, &e.To, &loc, &user); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		e.ID, e.LocationID, e.UserID = models.ParseID(id), models.ParseID(loc), models.ParseID(user)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresSource) participants(ctx context.Context) ([]models.Participant, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id::text, user_id::text, event_id::text FROM participants ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query participants")
	}
	defer rows.Close()

	var out []models.Participant
	for rows.Next() {
		var p models.Participant
		var id, user, event string
		if err := rows.Scan(&id, &user, &event); err != nil {
			return nil, errors.Wrap(err, "scan participant")
		}
		p.ID, p.UserID, p.EventID = models.ParseID(id), models.ParseID(user), models.ParseID(event)
		out = append(out, p)
	}
	return out, rows.Err()
}
