package database

import (
	"fmt"

	"github.com/fulldump/versiondb/store"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

type Config struct {
	// Populate is inserted in a first commit when the database loads, keyed by table
	Populate map[string][]map[string]any
}

type Database struct {
	config     *Config
	status     string
	store      *store.Store
	attachment *store.Attachment
	exit       chan struct{}
}

func NewDatabase(config *Config) *Database {
	db := &Database{
		config: config,
		status: StatusOpening,
		exit:   make(chan struct{}),
	}

	return db
}

func (db *Database) GetStatus() string {
	return db.status
}

func (db *Database) Store() *store.Store {
	return db.store
}

// Attachment is the primary attachment, the one the service works with.
func (db *Database) Attachment() *store.Attachment {
	return db.attachment
}

func (db *Database) Load() error {

	fmt.Println("Loading database...")

	db.store = store.New()
	db.attachment = db.store.Attach()

	err := db.populate()
	if err != nil {
		db.status = StatusClosing
		return err
	}

	db.status = StatusOperating

	return nil
}

func (db *Database) populate() error {
	if db.config == nil || len(db.config.Populate) == 0 {
		return nil
	}

	att := db.attachment

	err := att.BeginWrite()
	if err != nil {
		return err
	}

	for table, docs := range db.config.Populate {
		for _, doc := range docs {
			_, err := att.Create(table, doc)
			if err != nil {
				att.Cancel()
				return fmt.Errorf("populate '%s': %w", table, err)
			}
		}
		fmt.Println(table, len(docs))
	}

	_, err = att.Commit()
	if err != nil {
		return err
	}

	_, err = att.Refresh()
	return err
}

func (db *Database) Start() error {

	go db.Load()

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	defer close(db.exit)

	db.status = StatusClosing

	if db.attachment == nil {
		return nil
	}

	fmt.Printf("Closing attachment '%s'...\n", db.attachment.ID())
	err := db.attachment.Close()
	if err != nil {
		fmt.Printf("ERROR: close(%s): %s\n", db.attachment.ID(), err.Error())
	}

	return err
}
