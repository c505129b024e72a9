package services

import (
	"context"
	"time"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/google/uuid"
)

// Enrollment manages students' course enrolments and their status history.
type Enrollment struct {
	db  *client.Client
	now func() time.Time
}

func NewEnrollment(db *client.Client) *Enrollment {
	return &Enrollment{db: db, now: time.Now}
}

// Enroll registers the student on an active course. The enrolment starts
// PENDING with its first status log written alongside.
func (s *Enrollment) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.StudentCourse, error) {
	var enrolment *models.StudentCourse
	err := s.db.Transaction(ctx, func(tx *client.Client) error {
		course, err := tx.Course.FindUniqueOrThrow(ctx, client.CourseFindUniqueArgs{
			Where: client.CourseWhereUniqueInput{ID: &courseID},
		})
		if err != nil {
			return err
		}
		if !course.IsActive || course.IsArchived || course.IsDeleted {
			return &query.ValidationError{Model: "StudentCourse", Field: "courseId", Reason: "course is not open for enrolment"}
		}
		student, err := tx.Student.FindUniqueOrThrow(ctx, client.StudentFindUniqueArgs{
			Where: client.StudentWhereUniqueInput{ID: &studentID},
		})
		if err != nil {
			return err
		}

		enrolment, err = tx.StudentCourse.Create(ctx, &models.StudentCourse{
			OrgID:     student.OrgID,
			StudentID: studentID,
			CourseID:  courseID,
			Status:    models.CourseStatusPending,
			StatusLogs: []models.CourseStatusLog{{
				OrgID:     student.OrgID,
				ToStatus:  models.CourseStatusPending,
				ChangedAt: s.now(),
			}},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("student_id", studentID.String()).Str("course_id", courseID.String()).Msg("student enrolled")
	return enrolment, nil
}

// ChangeStatus moves an enrolment to a new status and records the change.
// Entering ACTIVE stamps startedAt once; entering COMPLETED stamps
// completedAt, and leaving it clears completedAt again.
func (s *Enrollment) ChangeStatus(ctx context.Context, id uuid.UUID, to models.CourseStatus, note *string) (*models.StudentCourse, error) {
	if !to.IsValid() {
		return nil, &query.ValidationError{Model: "StudentCourse", Field: "status", Reason: "unknown status " + string(to)}
	}
	var updated *models.StudentCourse
	err := s.db.Transaction(ctx, func(tx *client.Client) error {
		current, err := tx.StudentCourse.FindUniqueOrThrow(ctx, client.StudentCourseFindUniqueArgs{
			Where: client.StudentCourseWhereUniqueInput{ID: &id},
		})
		if err != nil {
			return err
		}
		from := current.Status
		if from == to {
			return &query.ValidationError{Model: "StudentCourse", Field: "status", Reason: "enrolment is already " + string(to)}
		}

		now := s.now()
		data := []client.StudentCourseAssignment{query.Set(client.StudentCourseFieldStatus, to)}
		if to == models.CourseStatusActive && current.StartedAt == nil {
			data = append(data, query.Set(client.StudentCourseFieldStartedAt, now))
		}
		switch {
		case to == models.CourseStatusCompleted:
			data = append(data, query.Set(client.StudentCourseFieldCompletedAt, now))
		case current.CompletedAt != nil:
			data = append(data, query.Unset(client.StudentCourseFieldCompletedAt))
		}
		if updated, err = tx.StudentCourse.Update(ctx, client.StudentCourseWhereUniqueInput{ID: &id}, data); err != nil {
			return err
		}

		_, err = tx.CourseStatusLog.Create(ctx, &models.CourseStatusLog{
			OrgID:           current.OrgID,
			StudentCourseID: id,
			FromStatus:      &from,
			ToStatus:        to,
			Note:            note,
			ChangedAt:       now,
		})
		return err
	}, client.TxOptions{IsolationLevel: client.RepeatableRead})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("student_course_id", id.String()).Str("to", string(to)).Msg("enrolment status changed")
	return updated, nil
}
