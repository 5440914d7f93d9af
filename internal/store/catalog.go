package store

import (
	"database/sql"
	"fmt"

	"prodtrack/internal/model"
	"prodtrack/internal/parser"
)

// SaveCatalog persists one import outcome as a single atomic unit: the
// object record plus every product and part row, or nothing at all.
// Returns the new object id.
func (s *Store) SaveCatalog(outcome *parser.Outcome) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO objects (obj_number) VALUES (?)`, outcome.ObjectNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to insert object: %w", err)
	}
	objectID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get object id: %w", err)
	}

	prodStmt, err := tx.Prepare(`
		INSERT INTO products (object_id, prod_number, name, amount, price)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare product statement: %w", err)
	}
	defer prodStmt.Close()

	partStmt, err := tx.Prepare(`
		INSERT INTO parts (product_id, name, price)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare part statement: %w", err)
	}
	defer partStmt.Close()

	for _, product := range outcome.Products {
		res, err := prodStmt.Exec(objectID, product.Number, product.Name, product.Amount, product.Price)
		if err != nil {
			return 0, fmt.Errorf("failed to insert product %q: %w", product.Name, err)
		}
		productID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get product id: %w", err)
		}

		for _, part := range product.Parts {
			if _, err := partStmt.Exec(productID, part.Name, part.Payment.StringFixed(2)); err != nil {
				return 0, fmt.Errorf("failed to insert part %q: %w", part.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return objectID, nil
}

// ListObjects returns all objects, newest first, with product counts.
func (s *Store) ListObjects() ([]*model.Object, error) {
	rows, err := s.db.Query(`
		SELECT o.id, o.obj_number, o.hidden, o.created_at, COUNT(p.id)
		FROM objects o
		LEFT JOIN products p ON p.object_id = o.id
		GROUP BY o.id
		ORDER BY o.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []*model.Object
	for rows.Next() {
		obj := &model.Object{}
		if err := rows.Scan(&obj.ID, &obj.ObjNumber, &obj.Hidden, &obj.CreatedAt, &obj.ProductCount); err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	return objects, rows.Err()
}

// GetObject returns one object with its full product and part tree, or
// nil when the id is unknown.
func (s *Store) GetObject(id int64) (*model.Object, []*model.Product, error) {
	obj := &model.Object{}
	err := s.db.QueryRow(`
		SELECT id, obj_number, hidden, created_at FROM objects WHERE id = ?
	`, id).Scan(&obj.ID, &obj.ObjNumber, &obj.Hidden, &obj.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	prodRows, err := s.db.Query(`
		SELECT id, object_id, prod_number, name, amount, price
		FROM products WHERE object_id = ? ORDER BY id
	`, id)
	if err != nil {
		return nil, nil, err
	}
	defer prodRows.Close()

	var products []*model.Product
	byID := map[int64]*model.Product{}
	for prodRows.Next() {
		p := &model.Product{}
		if err := prodRows.Scan(&p.ID, &p.ObjectID, &p.ProdNumber, &p.Name, &p.Amount, &p.Price); err != nil {
			return nil, nil, err
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	if err := prodRows.Err(); err != nil {
		return nil, nil, err
	}

	partRows, err := s.db.Query(`
		SELECT pt.id, pt.product_id, pt.name, pt.price
		FROM parts pt
		JOIN products p ON p.id = pt.product_id
		WHERE p.object_id = ? ORDER BY pt.id
	`, id)
	if err != nil {
		return nil, nil, err
	}
	defer partRows.Close()

	for partRows.Next() {
		part := model.Part{}
		if err := partRows.Scan(&part.ID, &part.ProductID, &part.Name, &part.Price); err != nil {
			return nil, nil, err
		}
		if p, ok := byID[part.ProductID]; ok {
			p.Parts = append(p.Parts, part)
		}
	}

	return obj, products, partRows.Err()
}

// DeleteObject removes an object with all its products and parts.
func (s *Store) DeleteObject(id int64) error {
	res, err := s.db.Exec(`DELETE FROM objects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountProducts returns the total number of products in the catalog.
func (s *Store) CountProducts() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
