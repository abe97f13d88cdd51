package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "backend")

// Session is the state of one data source as it is being read.
type Session struct {
	ID   string
	Name string
	Data Dataset
	// Done is set once the source has been read completely and will not
	// grow any further.
	Done bool
	Err  error
}

// snapshotRows is how many rows are read between two emitted snapshots.
const snapshotRows = 256

// Datasource reads CSV market data into sessions, one per opened source.
type Datasource struct {
	pool *stream.MutationPool[string, Session]
}

func NewDatasource(mutator *stream.Mutator) *Datasource {
	return &Datasource{
		pool: stream.NewMutationPool[string, Session](mutator),
	}
}

func (d *Datasource) SessionStream(ctx context.Context) <-chan map[string]*stream.Mutation[Session] {
	return d.pool.Stream(ctx)
}

func (d *Datasource) getMutation(ctx context.Context, sessionID string) *stream.Mutation[Session] {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return (<-d.SessionStream(ctx))[sessionID]
}

// StreamSession emits every new state of the session with the given ID.
func (d *Datasource) StreamSession(ctx context.Context, sessionID string) <-chan Session {
	m := d.getMutation(ctx, sessionID)
	if m == nil {
		out := make(chan Session, 1)
		out <- Session{ID: sessionID, Err: fmt.Errorf("no session %q", sessionID), Done: true}
		close(out)
		return out
	}
	return m.Stream(ctx)
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// Open starts a session reading the CSV file at path. With follow set the
// session keeps watching the file and picks up rows appended to it.
func (d *Datasource) Open(path string, follow bool) string {
	id := generateSessionID()
	stream.Mutate(d.pool, id, func(ctx context.Context) <-chan Session {
		out := make(chan Session, 1)
		go func() {
			defer close(out)
			session := Session{ID: id, Name: filepath.Base(path)}
			f, err := os.Open(path)
			if err != nil {
				session.Err = err
				session.Done = true
				out <- session
				return
			}
			defer f.Close()
			var more func(context.Context) error
			if follow {
				w, err := watchFile(path)
				if err != nil {
					log.WithError(err).WithField("file", path).Warn("cannot follow file, reading it once")
				} else {
					defer w.Close()
					more = w.wait
				}
			}
			read(ctx, session, f, more, out)
		}()
		return out
	})
	return id
}

// LoadFromFile lets the user pick a CSV file and reads it once.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile(".csv")
	if err != nil {
		return "", err
	}
	name := "data"
	if f, ok := file.(interface{ Name() string }); ok {
		name = filepath.Base(f.Name())
	}
	return d.LoadFromStream(name, file), nil
}

// LoadFromStream reads CSV data from r until it is exhausted, then closes
// it.
func (d *Datasource) LoadFromStream(name string, r io.ReadCloser) string {
	id := generateSessionID()
	stream.Mutate(d.pool, id, func(ctx context.Context) <-chan Session {
		out := make(chan Session, 1)
		go func() {
			defer close(out)
			defer r.Close()
			read(ctx, Session{ID: id, Name: name}, r, nil, out)
		}()
		return out
	})
	return id
}

// fileWatch reports writes to one file.
type fileWatch struct {
	*fsnotify.Watcher
}

func watchFile(path string) (fileWatch, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fileWatch{}, fmt.Errorf("failed creating file watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return fileWatch{}, fmt.Errorf("watching %s: %w", path, err)
	}
	return fileWatch{w}, nil
}

// wait blocks until the file is written to.
func (w fileWatch) wait(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return io.EOF
			}
			switch {
			case ev.Has(fsnotify.Write):
				return nil
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				return fmt.Errorf("%s was removed", ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return io.EOF
			}
			return err
		}
	}
}

// read parses CSV market data from r into session and sends snapshots of
// it on out. Whenever r is exhausted more is called, and reading resumes
// if it returns nil. A nil more ends the session at the first EOF.
func read(ctx context.Context, session Session, r io.Reader, more func(context.Context) error, out chan<- Session) {
	send := func() bool {
		select {
		case out <- session:
			return true
		case <-ctx.Done():
			return false
		}
	}
	finish := func(err error) {
		if err != nil && ctx.Err() == nil {
			log.WithError(err).WithField("session", session.ID).Error("reading market data failed")
			session.Err = err
		}
		session.Done = true
		send()
	}
	// awaitMore reports whether reading may continue after EOF.
	awaitMore := func() (bool, error) {
		if more == nil {
			return false, nil
		}
		if err := more(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	csvReader := csv.NewReader(NewLineReader(r))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'

	var header []string
	for header == nil {
		rec, err := csvReader.Read()
		switch {
		case errors.Is(err, io.EOF):
			if ok, err := awaitMore(); !ok {
				finish(errors.Join(fmt.Errorf("reading header: %w", io.ErrUnexpectedEOF), err))
				return
			}
		case err != nil:
			finish(fmt.Errorf("reading header: %w", err))
			return
		default:
			header = rec
		}
	}
	l, err := detectLayout(header)
	if err != nil {
		finish(err)
		return
	}
	session.Data = l.dataset()
	log.WithFields(logrus.Fields{
		"session": session.ID,
		"columns": session.Data.Names(),
	}).Debug("reading market data")
	if !send() {
		return
	}
	session.Data = session.Data.Clone()

	pending := 0
	line := 1
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			if pending > 0 {
				if !send() {
					return
				}
				session.Data = session.Data.Clone()
				pending = 0
			}
			ok, err := awaitMore()
			if !ok {
				finish(err)
				return
			}
			continue
		}
		line++
		if err != nil {
			log.WithError(err).WithField("session", session.ID).Warn("skipping malformed row")
			continue
		}
		row, err := l.parse(rec)
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{"session": session.ID, "line": line}).Warn("skipping row")
			continue
		}
		session.Data.Append(row)
		pending++
		if pending == snapshotRows {
			if !send() {
				return
			}
			session.Data = session.Data.Clone()
			pending = 0
		}
	}
}

// ReadAll reads CSV market data from r until it is exhausted.
func ReadAll(ctx context.Context, r io.Reader) (Dataset, error) {
	out := make(chan Session)
	go func() {
		defer close(out)
		read(ctx, Session{ID: "all"}, r, nil, out)
	}()
	var last Session
	for s := range out {
		last = s
	}
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	return last.Data, last.Err
}
