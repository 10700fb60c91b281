package store

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net"

	"aisb_backend/internal/model"

	"github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentStore keeps records as JSON rows in a single MySQL table. Uniqueness
// guards run inside a locking transaction so the duplicate check and the
// insert cannot race.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	id := newID()
	row, err := toRow(collection, id, doc)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", err
	}
	return id, nil
}

func (s *DocumentStore) CreateUnique(ctx context.Context, collection, field string, value any, doc any) (string, error) {
	id := newID()
	row, err := toRow(collection, id, doc)
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&model.Document{}).
			Where("collection = ?", collection).
			Where(datatypes.JSONQuery("data").Equals(value, field)).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string, out any) error {
	var row model.Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(row.Data, out)
}

func (s *DocumentStore) Query(ctx context.Context, collection, field string, value any, out any) error {
	var rows []model.Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Where(datatypes.JSONQuery("data").Equals(value, field)).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return err
	}
	return rowsInto(rows, out)
}

func (s *DocumentStore) List(ctx context.Context, collection string, out any) error {
	var rows []model.Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return err
	}
	return rowsInto(rows, out)
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.Document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND doc_id = ?", collection, id).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		rec := map[string]any{}
		if err := json.Unmarshal(row.Data, &rec); err != nil {
			return err
		}
		for k, v := range patch {
			rec[k] = v
		}
		rec["id"] = id

		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Model(&model.Document{}).
			Where("collection = ? AND doc_id = ?", collection, id).
			Update("data", datatypes.JSON(raw)).Error
	})
}

func toRow(collection, id string, doc any) (*model.Document, error) {
	m, err := docToMap(doc, id)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return &model.Document{
		Collection: collection,
		DocID:      id,
		Data:       datatypes.JSON(raw),
	}, nil
}

func rowsInto(rows []model.Document, out any) error {
	ms := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		m := map[string]any{}
		if err := json.Unmarshal(row.Data, &m); err != nil {
			return err
		}
		ms = append(ms, m)
	}
	return decodeSlice(ms, out)
}

// IsUnavailable reports whether an error looks like the database server being
// unreachable rather than a bad request: the class of failure that justifies
// switching to the local store.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1040, 1053, 1077, 2002, 2003, 2006, 2013:
			return true
		}
	}
	return errors.Is(err, mysql.ErrInvalidConn)
}
