package handlers

import (
	"github.com/anjiri1684/tutor_orm/client"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MountModels registers the data endpoints of every model.
func (h *Handler) MountModels(r fiber.Router) {
	mount(r, h, "/students",
		func(db *client.Client) *client.StudentDelegate { return db.Student },
		func(id uuid.UUID) client.StudentWhereUniqueInput { return client.StudentWhereUniqueInput{ID: &id} })
	mount(r, h, "/courses",
		func(db *client.Client) *client.CourseDelegate { return db.Course },
		func(id uuid.UUID) client.CourseWhereUniqueInput { return client.CourseWhereUniqueInput{ID: &id} })
	mount(r, h, "/lesson-books",
		func(db *client.Client) *client.LessonBookDelegate { return db.LessonBook },
		func(id uuid.UUID) client.LessonBookWhereUniqueInput { return client.LessonBookWhereUniqueInput{ID: &id} })
	mount(r, h, "/student-courses",
		func(db *client.Client) *client.StudentCourseDelegate { return db.StudentCourse },
		func(id uuid.UUID) client.StudentCourseWhereUniqueInput { return client.StudentCourseWhereUniqueInput{ID: &id} })
	mount(r, h, "/course-status-logs",
		func(db *client.Client) *client.CourseStatusLogDelegate { return db.CourseStatusLog },
		func(id uuid.UUID) client.CourseStatusLogWhereUniqueInput { return client.CourseStatusLogWhereUniqueInput{ID: &id} })
	mount(r, h, "/lesson-progress",
		func(db *client.Client) *client.LessonProgressDelegate { return db.LessonProgress },
		func(id uuid.UUID) client.LessonProgressWhereUniqueInput { return client.LessonProgressWhereUniqueInput{ID: &id} })
	mount(r, h, "/purchases",
		func(db *client.Client) *client.PurchaseDelegate { return db.Purchase },
		func(id uuid.UUID) client.PurchaseWhereUniqueInput { return client.PurchaseWhereUniqueInput{ID: &id} })
	mount(r, h, "/schedules",
		func(db *client.Client) *client.ScheduleDelegate { return db.Schedule },
		func(id uuid.UUID) client.ScheduleWhereUniqueInput { return client.ScheduleWhereUniqueInput{ID: &id} })
	mount(r, h, "/student-schedules",
		func(db *client.Client) *client.StudentScheduleDelegate { return db.StudentSchedule },
		func(id uuid.UUID) client.StudentScheduleWhereUniqueInput { return client.StudentScheduleWhereUniqueInput{ID: &id} })
	mount(r, h, "/teachers",
		func(db *client.Client) *client.TeacherDelegate { return db.Teacher },
		func(id uuid.UUID) client.TeacherWhereUniqueInput { return client.TeacherWhereUniqueInput{ID: &id} })
	mount(r, h, "/rooms",
		func(db *client.Client) *client.RoomDelegate { return db.Room },
		func(id uuid.UUID) client.RoomWhereUniqueInput { return client.RoomWhereUniqueInput{ID: &id} })
	mount(r, h, "/invoices",
		func(db *client.Client) *client.InvoiceDelegate { return db.Invoice },
		func(id uuid.UUID) client.InvoiceWhereUniqueInput { return client.InvoiceWhereUniqueInput{ID: &id} })
}
