package duck

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	nt "cafedash/entity"
	"cafedash/query"
)

// Duck keeps the order snapshot in in-memory duckdb tables and pushes
// filtering, sorting and paging down into sql.
type Duck struct {
	db     *sql.DB
	mu     sync.Mutex
	filter nt.FilterState
	srt    nt.Sort
	name   string
}

// New opens an in-memory duck; the caller registers the driver.
func New(name string) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	dk = &Duck{
		db:   db,
		srt:  nt.DefaultSort,
		name: name,
	}

	err = dk.createTables()
	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the data source
func (dk *Duck) Name() string {
	return dk.name
}

// Load replaces the snapshot wholesale
func (dk *Duck) Load(orders []nt.Order) (err error) {

	tx, err := dk.db.Begin()
	if err != nil {
		err = errors.Wrapf(err, "failed to begin load")
		return
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, stmt := range []string{"DELETE FROM order_items", "DELETE FROM orders"} {
		_, err = tx.Exec(stmt)
		if err != nil {
			err = errors.Wrapf(err, "failed to clear tables")
			return
		}
	}

	err = insertOrders(tx, orders)
	if err != nil {
		return
	}

	err = tx.Commit()
	err = errors.Wrapf(err, "failed to commit load")
	return
}

// SetView Filter and Sort
func (dk *Duck) SetView(filter nt.FilterState, srt nt.Sort) (err error) {

	dk.mu.Lock()
	defer dk.mu.Unlock()

	dk.filter = filter
	dk.srt = srt
	return nil
}

// GetView descriptors and count
func (dk *Duck) GetView() (descs []nt.Descriptor, count int, err error) {

	filter, _ := dk.view()
	descs = query.Build(filter)
	where, args := buildWhereClause(descs)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders o %s", where)
	err = dk.db.QueryRow(countQuery, args...).Scan(&count)
	if err != nil {
		err = errors.Wrapf(err, "failed to count orders")
		return nil, 0, err
	}

	return descs, count, nil
}

// GetPage of orders
func (dk *Duck) GetPage(offset, size int) (orders []nt.Order, err error) {

	filter, srt := dk.view()
	where, args := buildWhereClause(query.Build(filter))
	args = append(args, size, offset)

	stmt := fmt.Sprintf("%s %s %s LIMIT ? OFFSET ?", selectOrders, where, orderBy(srt))
	orders, err = dk.queryOrders(stmt, args...)
	if err != nil {
		return
	}

	err = dk.attachItems(orders)
	return
}

// GetOrder returns one order regardless of filter
func (dk *Duck) GetOrder(id string) (order nt.Order, err error) {

	orders, err := dk.queryOrders(selectOrders+" WHERE o.id = ?", id)
	if err != nil {
		return
	}
	if len(orders) == 0 {
		err = errors.Wrapf(nt.ErrNotFound, "id %q", id)
		return
	}

	err = dk.attachItems(orders)
	order = orders[0]
	return
}

// unexported

func (dk *Duck) view() (nt.FilterState, nt.Sort) {

	dk.mu.Lock()
	defer dk.mu.Unlock()

	return dk.filter, dk.srt
}

const selectOrders = `
	SELECT o.id, o.ts_raw, o.gender, o.gender_name, o.order_type, o.order_type_name,
		o.weather, o.weather_name, o.time_slot, o.time_slot_name,
		o.total_price, o.discount, o.final_price
	FROM orders o`

func (dk *Duck) createTables() (err error) {

	_, err = dk.db.Exec(`
		CREATE TABLE orders (
			id VARCHAR PRIMARY KEY,
			seq INTEGER NOT NULL,
			ts TIMESTAMP,
			ts_raw VARCHAR NOT NULL,
			gender INTEGER,
			gender_name VARCHAR,
			order_type INTEGER,
			order_type_name VARCHAR,
			weather INTEGER,
			weather_name VARCHAR,
			time_slot INTEGER,
			time_slot_name VARCHAR,
			total_price DOUBLE,
			discount DOUBLE,
			final_price DOUBLE
		)
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to create orders table")
		return
	}

	_, err = dk.db.Exec(`
		CREATE TABLE order_items (
			order_id VARCHAR NOT NULL,
			pos INTEGER NOT NULL,
			id VARCHAR,
			menu_item INTEGER,
			menu_item_name VARCHAR,
			menu_item_price DOUBLE,
			category_name VARCHAR,
			price DOUBLE
		)
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to create order_items table")
		return
	}

	_, err = dk.db.Exec("CREATE INDEX idx_items_order ON order_items(order_id)")
	err = errors.Wrapf(err, "failed to create index")
	return
}

func insertOrders(tx *sql.Tx, orders []nt.Order) (err error) {

	orderStmt, err := tx.Prepare(`INSERT INTO orders VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		err = errors.Wrapf(err, "failed to prepare order insert")
		return
	}
	defer orderStmt.Close()

	itemStmt, err := tx.Prepare(`INSERT INTO order_items VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		err = errors.Wrapf(err, "failed to prepare item insert")
		return
	}
	defer itemStmt.Close()

	for seq, order := range orders {

		var ts any
		if tm, perr := order.Time(); perr == nil {
			ts = tm.UTC()
		}

		_, err = orderStmt.Exec(
			order.ID, seq, ts, order.Timestamp,
			order.Gender, order.GenderName, order.OrderType, order.OrderTypeName,
			order.Weather, order.WeatherName, order.TimeSlot, order.TimeSlotName,
			order.TotalPrice, order.Discount, order.FinalPrice,
		)
		if err != nil {
			err = errors.Wrapf(err, "failed to insert order %q", order.ID)
			return
		}

		for pos, item := range order.Items {
			_, err = itemStmt.Exec(
				order.ID, pos, item.ID, item.MenuItem, item.MenuItemName,
				item.MenuItemPrice, item.CategoryName, item.Price,
			)
			if err != nil {
				err = errors.Wrapf(err, "failed to insert item of order %q", order.ID)
				return
			}
		}
	}

	return
}

func (dk *Duck) queryOrders(stmt string, args ...any) (orders []nt.Order, err error) {

	rows, err := dk.db.Query(stmt, args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query orders")
		return
	}
	defer rows.Close()

	orders = []nt.Order{}
	for rows.Next() {
		var order nt.Order
		err = rows.Scan(
			&order.ID, &order.Timestamp,
			&order.Gender, &order.GenderName, &order.OrderType, &order.OrderTypeName,
			&order.Weather, &order.WeatherName, &order.TimeSlot, &order.TimeSlotName,
			&order.TotalPrice, &order.Discount, &order.FinalPrice,
		)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan order")
			return
		}
		order.Items = []nt.OrderItem{}
		orders = append(orders, order)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating orders")
	return
}

func (dk *Duck) attachItems(orders []nt.Order) (err error) {

	if len(orders) == 0 {
		return
	}

	idx := make(map[string]int, len(orders))
	args := make([]any, len(orders))
	for i, order := range orders {
		idx[order.ID] = i
		args[i] = order.ID
	}

	stmt := fmt.Sprintf(`
		SELECT order_id, id, menu_item, menu_item_name, menu_item_price, category_name, price
		FROM order_items
		WHERE order_id IN (%s)
		ORDER BY order_id, pos`, placeholders(len(orders)))

	rows, err := dk.db.Query(stmt, args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query items")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item nt.OrderItem
		err = rows.Scan(&orderID, &item.ID, &item.MenuItem, &item.MenuItemName,
			&item.MenuItemPrice, &item.CategoryName, &item.Price)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan item")
			return
		}
		i := idx[orderID]
		orders[i].Items = append(orders[i].Items, item)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating items")
	return
}

// buildWhereClause converts descriptors to a sql WHERE clause and its args
func buildWhereClause(descs []nt.Descriptor) (string, []any) {

	var clauses []string
	var args []any
	for _, desc := range descs {
		expr, exprArgs := buildFilterExpr(desc)
		if expr == "" {
			continue
		}
		clauses = append(clauses, expr)
		args = append(args, exprArgs...)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// buildFilterExpr builds one gate (without WHERE prefix)
func buildFilterExpr(desc nt.Descriptor) (string, []any) {
	switch desc.Kind {
	case nt.TextSearch:
		if len(desc.Terms) == 0 {
			return "", nil
		}
		var clauses []string
		var args []any
		for _, term := range desc.Terms {
			clauses = append(clauses, `EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.id AND `+
				`(strpos(lower(i.menu_item_name), ?) > 0 OR strpos(lower(i.category_name), ?) > 0))`)
			term = strings.ToLower(term)
			args = append(args, term, term)
		}
		joiner := " AND "
		if desc.Mode.Normal() == nt.ModeOr {
			joiner = " OR "
		}
		return "(" + strings.Join(clauses, joiner) + ")", args

	case nt.CategoricalSet:
		if len(desc.Values) == 0 {
			return "", nil
		}
		args := make([]any, len(desc.Values))
		for i, val := range desc.Values {
			args[i] = val
		}
		return fmt.Sprintf("o.%s IN (%s)", desc.Attribute, placeholders(len(desc.Values))), args

	case nt.NumericRange:
		var clauses []string
		var args []any
		if desc.Min != nil {
			clauses = append(clauses, fmt.Sprintf("o.%s >= ?", desc.Attribute))
			args = append(args, *desc.Min)
		}
		if desc.Max != nil {
			clauses = append(clauses, fmt.Sprintf("o.%s <= ?", desc.Attribute))
			args = append(args, *desc.Max)
		}
		if len(clauses) == 0 {
			return "", nil
		}
		return "(" + strings.Join(clauses, " AND ") + ")", args
	}
	return "", nil
}

// orderBy keeps load order as the final key so paging is stable
func orderBy(srt nt.Sort) string {

	dir := "ASC"
	if srt.Desc {
		dir = "DESC"
	}

	switch srt.Column {
	case nt.SortID:
		return fmt.Sprintf("ORDER BY o.id %s, o.seq", dir)
	case nt.SortTimestamp:
		return fmt.Sprintf("ORDER BY o.ts %s NULLS LAST, o.ts_raw %s, o.seq", dir, dir)
	case nt.SortTotalPrice:
		return fmt.Sprintf("ORDER BY o.total_price %s, o.seq", dir)
	case nt.SortDiscount:
		return fmt.Sprintf("ORDER BY o.discount %s, o.seq", dir)
	}
	return "ORDER BY o.seq"
}

func placeholders(count int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", count), ", ")
}
