package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "edumarkaz_backend/internals/features/directory/model"
	helper "edumarkaz_backend/internals/helpers"
)

// Service is the read-only directory the billing engine pulls from:
// group prices, enrollments, teaching assignments, commission rates and
// the payment-method catalog. Entity CRUD lives in the admin service.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (*model.GroupModel, error) {
	var g model.GroupModel
	if err := s.DB.WithContext(ctx).
		First(&g, "group_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %s: %w", id, helper.ErrNotFound)
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

func (s *Service) GetStudent(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	var st model.StudentModel
	if err := s.DB.WithContext(ctx).
		First(&st, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %s: %w", id, helper.ErrNotFound)
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &st, nil
}

func (s *Service) GetEmployee(ctx context.Context, id uuid.UUID) (*model.EmployeeModel, error) {
	var e model.EmployeeModel
	if err := s.DB.WithContext(ctx).
		First(&e, "employee_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("employee %s: %w", id, helper.ErrNotFound)
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// GetCommissionRate returns the employee's revenue share percent (0-100).
func (s *Service) GetCommissionRate(ctx context.Context, employeeID uuid.UUID) (int, error) {
	e, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return e.EmployeeCommissionRate, nil
}

// ListMethods returns the school's method labels in catalog insertion order.
func (s *Service) ListMethods(ctx context.Context, schoolID uuid.UUID) ([]string, error) {
	var names []string
	if err := s.DB.WithContext(ctx).
		Model(&model.PaymentMethodModel{}).
		Where("payment_method_school_id = ?", schoolID).
		Order("payment_method_created_at ASC").
		Pluck("payment_method_name", &names).Error; err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return names, nil
}

// GroupIDsTaughtBy returns the ids of groups the employee teaches.
// An employee with no assignments is a valid zero-group answer.
func (s *Service) GroupIDsTaughtBy(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.DB.WithContext(ctx).
		Model(&model.EmployeeGroupModel{}).
		Where("employee_group_employee_id = ?", employeeID).
		Pluck("employee_group_group_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("groups taught by %s: %w", employeeID, err)
	}
	return ids, nil
}

// FindEnrollment returns the active enrollment of (student, group).
func (s *Service) FindEnrollment(ctx context.Context, studentID, groupID uuid.UUID) (*model.StudentGroupModel, error) {
	var enr model.StudentGroupModel
	if err := s.DB.WithContext(ctx).
		First(&enr, "student_group_student_id = ? AND student_group_group_id = ?", studentID, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("enrollment of student %s in group %s: %w", studentID, groupID, helper.ErrNotFound)
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enr, nil
}

// EnrollmentScope narrows the enrollment projection to one group, one
// employee's groups, or the whole school.
type EnrollmentScope struct {
	SchoolID   uuid.UUID
	GroupID    *uuid.UUID
	EmployeeID *uuid.UUID
}

// EnrollmentRow is the flattened {student, group, teacher} projection
// used by debt reporting. One query, no ownership-graph walking.
type EnrollmentRow struct {
	StudentID    uuid.UUID  `gorm:"column:student_id"`
	StudentName  string     `gorm:"column:student_name"`
	StudentPhone *string    `gorm:"column:student_phone"`
	GroupID      uuid.UUID  `gorm:"column:group_id"`
	GroupName    string     `gorm:"column:group_name"`
	GroupPrice   int64      `gorm:"column:group_monthly_price"`
	EnrolledAt   time.Time  `gorm:"column:enrolled_at"`
	TeacherName  *string    `gorm:"column:teacher_name"`
}

// ListEnrollmentsWithTeacher lists active enrollments in scope, each with
// the group's first assigned teacher (NULL when none is assigned).
func (s *Service) ListEnrollmentsWithTeacher(ctx context.Context, scope EnrollmentScope) ([]EnrollmentRow, error) {
	q := `
		SELECT st.student_id, st.student_name, st.student_phone,
		       g.group_id, g.group_name, g.group_monthly_price,
		       sg.student_group_created_at AS enrolled_at,
		       t.employee_name AS teacher_name
		FROM student_groups sg
		JOIN students st ON st.student_id = sg.student_group_student_id
		     AND st.student_deleted_at IS NULL
		JOIN groups g ON g.group_id = sg.student_group_group_id
		     AND g.group_deleted_at IS NULL
		     AND g.group_status = 'active'
		LEFT JOIN LATERAL (
			SELECT e.employee_name
			FROM employee_groups eg
			JOIN employees e ON e.employee_id = eg.employee_group_employee_id
			     AND e.employee_deleted_at IS NULL
			WHERE eg.employee_group_group_id = g.group_id
			  AND eg.employee_group_deleted_at IS NULL
			ORDER BY eg.employee_group_created_at ASC
			LIMIT 1
		) t ON true
		WHERE sg.student_group_deleted_at IS NULL
		  AND g.group_school_id = ?`
	args := []interface{}{scope.SchoolID}

	if scope.GroupID != nil {
		q += ` AND g.group_id = ?`
		args = append(args, *scope.GroupID)
	}
	if scope.EmployeeID != nil {
		q += ` AND g.group_id IN (
			SELECT employee_group_group_id FROM employee_groups
			WHERE employee_group_employee_id = ?
			  AND employee_group_deleted_at IS NULL)`
		args = append(args, *scope.EmployeeID)
	}
	q += ` ORDER BY st.student_name ASC, g.group_name ASC`

	var rows []EnrollmentRow
	if err := s.DB.WithContext(ctx).Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return rows, nil
}
