package tracing

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteBackend batches transitions and writes them to a SQLite database.
type SQLiteBackend struct {
	*sql.DB
	statement *sql.Stmt

	mu          sync.Mutex
	dbName      string
	batchSize   int
	transitions []Transition
}

// NewSQLiteBackend creates a backend that writes to path + ".sqlite3". An
// empty path picks a unique name. The backend flushes at process exit.
func NewSQLiteBackend(path string) *SQLiteBackend {
	b := &SQLiteBackend{
		dbName:    path,
		batchSize: 4096,
	}

	atexit.Register(func() { b.Flush() })

	return b
}

// Init establishes the database connection and prepares the transition
// table. It must run once before the first Write.
func (b *SQLiteBackend) Init() {
	if b.dbName == "" {
		b.dbName = "dspfw_freq_trace_" + xid.New().String()
	}

	filename := b.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Frequency trace database: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	b.DB = db

	b.createTable()
	b.prepareStatement()
}

func (b *SQLiteBackend) createTable() {
	_, err := b.Exec(`
		CREATE TABLE freq_transitions (
			id TEXT,
			phase TEXT,
			old_freq INTEGER,
			old_ticks_per_usec INTEGER,
			new_freq INTEGER,
			host_time REAL
		);
	`)
	if err != nil {
		panic(err)
	}
}

func (b *SQLiteBackend) prepareStatement() {
	stmt, err := b.Prepare(`
		INSERT INTO freq_transitions
			(id, phase, old_freq, old_ticks_per_usec, new_freq, host_time)
		VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		panic(err)
	}

	b.statement = stmt
}

// Write buffers one transition, flushing when the batch is full. Buffering
// keeps Write cheap enough to run inside the clock critical section.
func (b *SQLiteBackend) Write(t Transition) {
	b.mu.Lock()
	b.transitions = append(b.transitions, t)
	full := len(b.transitions) >= b.batchSize
	b.mu.Unlock()

	if full {
		b.Flush()
	}
}

// Flush writes all buffered transitions to the database.
func (b *SQLiteBackend) Flush() {
	b.mu.Lock()
	batch := b.transitions
	b.transitions = nil
	b.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	tx, err := b.Begin()
	if err != nil {
		panic(err)
	}

	stmt := tx.Stmt(b.statement)
	for _, t := range batch {
		_, err := stmt.Exec(
			t.ID, t.Phase,
			t.OldFreq, t.OldTicksPerUsec, t.NewFreq,
			t.HostTime,
		)
		if err != nil {
			panic(err)
		}
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}
}
