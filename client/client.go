// Package client is the query client for the tutoring schema. Each model
// is reached through a Delegate field on Client.
package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Observer records query outcomes. The metrics package implements it.
type Observer interface {
	ObserveQuery(model, operation string, elapsed time.Duration, err error)
	ObserveCache(model string, hit bool)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, string, time.Duration, error) {}
func (nopObserver) ObserveCache(string, bool)                         {}

type options struct {
	cache     Cache
	observer  Observer
	listeners []Listener
}

type Option func(*options)

// WithCache enables the read-through cache for findUnique by id.
func WithCache(c Cache) Option {
	return func(o *options) { o.cache = c }
}

func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithListener subscribes l to committed write events.
func WithListener(l Listener) Option {
	return func(o *options) { o.listeners = append(o.listeners, l) }
}

type Client struct {
	db      *gorm.DB
	orgID   *uuid.UUID
	opts    *options
	pending *[]Event

	Student         *StudentDelegate
	Course          *CourseDelegate
	LessonBook      *LessonBookDelegate
	StudentCourse   *StudentCourseDelegate
	CourseStatusLog *CourseStatusLogDelegate
	LessonProgress  *LessonProgressDelegate
	Purchase        *PurchaseDelegate
	Schedule        *ScheduleDelegate
	StudentSchedule *StudentScheduleDelegate
	Teacher         *TeacherDelegate
	Room            *RoomDelegate
	Invoice         *InvoiceDelegate
}

// New parses every model schema and binds the delegates to db.
func New(db *gorm.DB, opts ...Option) (*Client, error) {
	if db == nil {
		return nil, fmt.Errorf("client: nil database")
	}
	o := &options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(o)
	}
	var namer schema.Namer = schema.NamingStrategy{}
	if db.Config != nil && db.NamingStrategy != nil {
		namer = db.NamingStrategy
	}
	for _, m := range models.All() {
		if _, err := loadMeta(m, namer); err != nil {
			return nil, err
		}
	}
	c := &Client{db: db, opts: o}
	c.bind()
	return c, nil
}

func (c *Client) bind() {
	c.Student = newDelegate[models.Student, StudentWhereInput, StudentWhereUniqueInput, StudentField](c)
	c.Course = newDelegate[models.Course, CourseWhereInput, CourseWhereUniqueInput, CourseField](c)
	c.LessonBook = newDelegate[models.LessonBook, LessonBookWhereInput, LessonBookWhereUniqueInput, LessonBookField](c)
	c.StudentCourse = newDelegate[models.StudentCourse, StudentCourseWhereInput, StudentCourseWhereUniqueInput, StudentCourseField](c)
	c.CourseStatusLog = newDelegate[models.CourseStatusLog, CourseStatusLogWhereInput, CourseStatusLogWhereUniqueInput, CourseStatusLogField](c)
	c.LessonProgress = newDelegate[models.LessonProgress, LessonProgressWhereInput, LessonProgressWhereUniqueInput, LessonProgressField](c)
	c.Purchase = newDelegate[models.Purchase, PurchaseWhereInput, PurchaseWhereUniqueInput, PurchaseField](c)
	c.Schedule = newDelegate[models.Schedule, ScheduleWhereInput, ScheduleWhereUniqueInput, ScheduleField](c)
	c.StudentSchedule = newDelegate[models.StudentSchedule, StudentScheduleWhereInput, StudentScheduleWhereUniqueInput, StudentScheduleField](c)
	c.Teacher = newDelegate[models.Teacher, TeacherWhereInput, TeacherWhereUniqueInput, TeacherField](c)
	c.Room = newDelegate[models.Room, RoomWhereInput, RoomWhereUniqueInput, RoomField](c)
	c.Invoice = newDelegate[models.Invoice, InvoiceWhereInput, InvoiceWhereUniqueInput, InvoiceField](c)
}

func (c *Client) clone(db *gorm.DB) *Client {
	cp := &Client{db: db, orgID: c.orgID, opts: c.opts, pending: c.pending}
	cp.bind()
	return cp
}

// DB exposes the underlying connection.
func (c *Client) DB() *gorm.DB { return c.db }

// OrgID is the tenant the client is scoped to, if any.
func (c *Client) OrgID() (uuid.UUID, bool) {
	if c.orgID == nil {
		return uuid.Nil, false
	}
	return *c.orgID, true
}

// ForOrg returns a client whose reads and writes are confined to one
// organization. Created rows are stamped with orgID.
func (c *Client) ForOrg(orgID uuid.UUID) *Client {
	cp := c.clone(c.db)
	cp.orgID = &orgID
	return cp
}

type IsolationLevel string

const (
	ReadUncommitted IsolationLevel = "ReadUncommitted"
	ReadCommitted   IsolationLevel = "ReadCommitted"
	RepeatableRead  IsolationLevel = "RepeatableRead"
	Serializable    IsolationLevel = "Serializable"
)

func (l IsolationLevel) sql() (sql.IsolationLevel, error) {
	switch l {
	case "":
		return sql.LevelDefault, nil
	case ReadUncommitted:
		return sql.LevelReadUncommitted, nil
	case ReadCommitted:
		return sql.LevelReadCommitted, nil
	case RepeatableRead:
		return sql.LevelRepeatableRead, nil
	case Serializable:
		return sql.LevelSerializable, nil
	}
	return 0, &query.ValidationError{Field: "isolationLevel", Reason: fmt.Sprintf("unknown isolation level %q", l)}
}

type TxOptions struct {
	IsolationLevel IsolationLevel
	// Timeout bounds the whole transaction including fn.
	Timeout  time.Duration
	ReadOnly bool
}

// Transaction runs fn inside a database transaction. Returning an error
// rolls back. Events are delivered once the outermost transaction commits.
func (c *Client) Transaction(ctx context.Context, fn func(tx *Client) error, opts ...TxOptions) error {
	var o TxOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	level, err := o.IsolationLevel.sql()
	if err != nil {
		return err
	}
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	outer := c.pending == nil
	var events []Event
	err = c.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		tx := c.clone(gtx)
		if outer {
			tx.pending = &events
		}
		return fn(tx)
	}, &sql.TxOptions{Isolation: level, ReadOnly: o.ReadOnly})
	if err != nil {
		return translate("", "transaction", err)
	}
	if outer {
		for _, e := range events {
			c.publish(ctx, e)
		}
	}
	return nil
}

// QueryRaw scans the rows of a raw SQL query into dest.
func (c *Client) QueryRaw(ctx context.Context, dest interface{}, statement string, args ...interface{}) error {
	start := time.Now()
	err := c.db.WithContext(ctx).Raw(statement, args...).Scan(dest).Error
	err = translate("", "queryRaw", err)
	c.opts.observer.ObserveQuery("", "queryRaw", time.Since(start), err)
	return err
}

// ExecuteRaw runs a raw statement and returns the affected row count.
// It does not invalidate cached records.
func (c *Client) ExecuteRaw(ctx context.Context, statement string, args ...interface{}) (int64, error) {
	start := time.Now()
	res := c.db.WithContext(ctx).Exec(statement, args...)
	err := translate("", "executeRaw", res.Error)
	c.opts.observer.ObserveQuery("", "executeRaw", time.Since(start), err)
	return res.RowsAffected, err
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type conditionDecoder func(raw json.RawMessage) (query.Condition, error)

func decoderFor[W query.Condition]() conditionDecoder {
	return func(raw json.RawMessage) (query.Condition, error) {
		var w W
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return w, nil
	}
}

// conditions decodes include filters by table name.
var conditions = map[string]conditionDecoder{
	"students":           decoderFor[StudentWhereInput](),
	"courses":            decoderFor[CourseWhereInput](),
	"lesson_books":       decoderFor[LessonBookWhereInput](),
	"student_courses":    decoderFor[StudentCourseWhereInput](),
	"course_status_logs": decoderFor[CourseStatusLogWhereInput](),
	"lesson_progress":    decoderFor[LessonProgressWhereInput](),
	"purchases":          decoderFor[PurchaseWhereInput](),
	"schedules":          decoderFor[ScheduleWhereInput](),
	"student_schedules":  decoderFor[StudentScheduleWhereInput](),
	"teachers":           decoderFor[TeacherWhereInput](),
	"rooms":              decoderFor[RoomWhereInput](),
	"invoices":           decoderFor[InvoiceWhereInput](),
}
