package engine

import (
	"slices"
	"sync"
	"time"

	"github.com/leengari/sillyql/internal/domain/command"
	"github.com/leengari/sillyql/internal/domain/data"
	"github.com/leengari/sillyql/internal/domain/errors"
	"github.com/leengari/sillyql/internal/domain/schema"
	"github.com/leengari/sillyql/internal/planner"
	"github.com/leengari/sillyql/internal/query/indexing"
	"github.com/leengari/sillyql/internal/query/operations/crud"
	"github.com/leengari/sillyql/internal/query/operations/join"
	"github.com/leengari/sillyql/internal/query/operations/projection"
)

// Engine is the main entry point for the database system.
// It owns the table catalog and turns each call into one command: the
// command either succeeds fully or fails before any row is touched.
type Engine struct {
	mu     sync.RWMutex
	db     *schema.Database
	config *planner.ExecutionConfig

	// observers is copied on write, so notify can range over a snapshot
	// while commands run concurrently
	obsMu     sync.RWMutex
	observers []Observer
}

// New creates a new Engine instance. A nil db starts empty; a nil config
// uses planner.DefaultExecutionConfig.
func New(db *schema.Database, cfg *planner.ExecutionConfig) *Engine {
	if db == nil {
		db = schema.NewDatabase("main")
	}
	if cfg == nil {
		cfg = planner.DefaultExecutionConfig()
	}
	return &Engine{
		db:        db,
		config:    cfg,
		observers: make([]Observer, 0),
	}
}

// Config returns the execution configuration in use
func (e *Engine) Config() *planner.ExecutionConfig {
	return e.config
}

// CreateTable registers a new table with the given columns
func (e *Engine) CreateTable(name string, columns []schema.ColumnDef) (*schema.Table, error) {
	var table *schema.Table
	err := e.run(command.KindCreate, name, func() (interface{}, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		var err error
		table, err = e.db.Create(name, columns)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"columns": len(columns)}, nil
	})
	return table, err
}

// InsertRows appends rows to a table and returns the inserted position
// range [start, end)
func (e *Engine) InsertRows(tableName string, rows []data.Row) (int, int, error) {
	var start, end int
	err := e.run(command.KindInsert, tableName, func() (interface{}, error) {
		e.mu.RLock()
		defer e.mu.RUnlock()

		table, err := e.db.Get(tableName)
		if err != nil {
			return nil, err
		}
		start, end, err = table.InsertRows(rows)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"start": start, "end": end}, nil
	})
	return start, end, err
}

// Scan returns the rows of a table matching filter (every row when filter
// is nil), projected to the named columns (every column when columns is
// nil). With quiet set, only the count is produced.
func (e *Engine) Scan(tableName string, columns []string, filter *crud.Filter, quiet bool) (*data.ResultSet, error) {
	var result *data.ResultSet
	err := e.run(command.KindPrint, tableName, func() (interface{}, error) {
		e.mu.RLock()
		defer e.mu.RUnlock()

		table, err := e.db.Get(tableName)
		if err != nil {
			return nil, err
		}

		var proj *projection.Projection
		if columns != nil {
			proj = projection.Names(columns...)
		}

		result, err = crud.Select(table, proj, filter, crud.Options{Config: e.config, Quiet: quiet})
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"rows_returned": result.Count}, nil
	})
	return result, err
}

// DeleteWhere removes the rows matching filter and returns how many were
// removed
func (e *Engine) DeleteWhere(tableName string, filter crud.Filter) (int, error) {
	var deleted int
	err := e.run(command.KindDelete, tableName, func() (interface{}, error) {
		e.mu.RLock()
		defer e.mu.RUnlock()

		table, err := e.db.Get(tableName)
		if err != nil {
			return nil, err
		}
		deleted, err = crud.Delete(table, filter, crud.Options{Config: e.config})
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"rows_affected": deleted}, nil
	})
	return deleted, err
}

// GenerateIndex builds an index of kind on column, replacing any index the
// table already has
func (e *Engine) GenerateIndex(tableName string, kind indexing.Kind, column string) error {
	return e.run(command.KindGenerate, tableName, func() (interface{}, error) {
		e.mu.RLock()
		defer e.mu.RUnlock()

		table, err := e.db.Get(tableName)
		if err != nil {
			return nil, err
		}
		idx, err := table.GenerateIndex(kind, column)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"kind": kind.String(), "column": column, "keys": idx.Keys()}, nil
	})
}

// Join performs an inner equi-join described by req
func (e *Engine) Join(req join.Request, quiet bool) (*data.ResultSet, error) {
	var result *data.ResultSet
	err := e.run(command.KindJoin, req.Left, func() (interface{}, error) {
		e.mu.RLock()
		defer e.mu.RUnlock()

		left, err := e.db.Get(req.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.db.Get(req.Right)
		if err != nil {
			return nil, err
		}

		result, err = join.ExecuteJoin(left, right, req.LeftColumn, req.RightColumn, req.Projection,
			join.Options{Config: e.config, Quiet: quiet})
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"right_table": req.Right, "rows_returned": result.Count}, nil
	})
	return result, err
}

// DropTable removes a table and its index
func (e *Engine) DropTable(name string) error {
	return e.run(command.KindRemove, name, func() (interface{}, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		return nil, e.db.Drop(name)
	})
}

// Schema returns a table's schema so the command processor can type its
// literals. cmd is the command the lookup is made for.
func (e *Engine) Schema(cmd command.Kind, tableName string) (*schema.TableSchema, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	table, err := e.db.Get(tableName)
	if err != nil {
		return nil, errors.WithCommand(err, cmd)
	}
	return table.Schema, nil
}

// TableInfo summarizes one table for listings
type TableInfo struct {
	Name        string          `json:"name"`
	Columns     []schema.Column `json:"columns"`
	Rows        int             `json:"rows"`
	Index       string          `json:"index,omitempty"`
	IndexColumn string          `json:"index_column,omitempty"`
}

// Describe reports a table's columns, row count and live index
func (e *Engine) Describe(name string) (*TableInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	table, err := e.db.Get(name)
	if err != nil {
		return nil, err
	}

	table.RLock()
	defer table.RUnlock()

	info := &TableInfo{
		Name:    table.Name,
		Columns: table.Schema.Columns,
		Rows:    table.Store().Len(),
	}
	if idx := table.LiveIndex(); idx != nil {
		info.Index = idx.Kind().String()
		info.IndexColumn = table.Schema.Columns[idx.Column()].Name
	}
	return info, nil
}

// ListTables returns the table names in sorted order
func (e *Engine) ListTables() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.db.Names()
}

// run wraps one command with lifecycle events and stamps errors with the
// command kind
func (e *Engine) run(kind command.Kind, table string, fn func() (interface{}, error)) error {
	cmd := command.New(kind, table)
	e.notify(Event{Type: EventCommandStart, CommandID: cmd.ID, Command: kind, Table: table})

	result, err := fn()
	err = errors.WithCommand(err, kind)
	elapsed := cmd.Finish()

	e.notify(Event{
		Type:      EventCommandEnd,
		CommandID: cmd.ID,
		Command:   kind,
		Table:     table,
		Duration:  elapsed,
		Data:      result,
		Err:       err,
	})
	return err
}

// AddObserver registers an observer to receive lifecycle events.
// It is safe to call while commands are running.
func (e *Engine) AddObserver(observer Observer) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	e.observers = append(slices.Clip(e.observers), observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	for i, o := range e.observers {
		if o == observer {
			e.observers = slices.Concat(e.observers[:i], e.observers[i+1:])
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	e.obsMu.RLock()
	observers := e.observers
	e.obsMu.RUnlock()
	for _, observer := range observers {
		observer.OnEvent(event)
	}
}
