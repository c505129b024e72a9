package jobs

import (
	"context"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/anjiri1684/tutor_orm/query"
)

// ArchiveFinishedEnrollments archives completed and dropped enrolments that
// have not changed for the configured period.
func (r *Runner) ArchiveFinishedEnrollments(ctx context.Context) (int64, error) {
	cutoff := r.now().Add(-r.archiveAfter)
	n, err := r.db.StudentCourse.UpdateMany(ctx, &client.StudentCourseWhereInput{
		Status: &query.EqualsFilter[models.CourseStatus]{
			In: []models.CourseStatus{models.CourseStatusCompleted, models.CourseStatusDropped},
		},
		IsArchived: &query.BoolFilter{Equals: query.Ptr(false)},
		IsDeleted:  &query.BoolFilter{Equals: query.Ptr(false)},
		UpdatedAt:  &query.DateTimeFilter{Lt: &cutoff},
	}, []client.StudentCourseAssignment{
		query.Set(client.StudentCourseFieldIsArchived, true),
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info().Int64("archived", n).Time("cutoff", cutoff).Msg("finished enrolments archived")
	}
	return n, nil
}
