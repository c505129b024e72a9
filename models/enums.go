package models

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// CourseStatus is the lifecycle state of a student's enrolment in a course.
type CourseStatus string

const (
	CourseStatusPending   CourseStatus = "PENDING"
	CourseStatusActive    CourseStatus = "ACTIVE"
	CourseStatusPaused    CourseStatus = "PAUSED"
	CourseStatusCompleted CourseStatus = "COMPLETED"
	CourseStatusDropped   CourseStatus = "DROPPED"
)

func (s CourseStatus) IsValid() bool {
	switch s {
	case CourseStatusPending, CourseStatusActive, CourseStatusPaused, CourseStatusCompleted, CourseStatusDropped:
		return true
	}
	return false
}

// IsFinal reports whether no further transitions are expected.
func (s CourseStatus) IsFinal() bool {
	return s == CourseStatusCompleted || s == CourseStatusDropped
}

type PurchaseType string

const (
	PurchaseTypeCourse       PurchaseType = "COURSE"
	PurchaseTypeMaterial     PurchaseType = "MATERIAL"
	PurchaseTypeRegistration PurchaseType = "REGISTRATION"
	PurchaseTypeOther        PurchaseType = "OTHER"
)

func (t PurchaseType) IsValid() bool {
	switch t {
	case PurchaseTypeCourse, PurchaseTypeMaterial, PurchaseTypeRegistration, PurchaseTypeOther:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "CASH"
	PaymentMethodBankTransfer  PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentMethodMobilePayment PaymentMethod = "MOBILE_PAYMENT"
	PaymentMethodOther         PaymentMethod = "OTHER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodMobilePayment, PaymentMethodOther:
		return true
	}
	return false
}

type CourseLevel string

const (
	CourseLevelBeginner          CourseLevel = "BEGINNER"
	CourseLevelElementary        CourseLevel = "ELEMENTARY"
	CourseLevelIntermediate      CourseLevel = "INTERMEDIATE"
	CourseLevelUpperIntermediate CourseLevel = "UPPER_INTERMEDIATE"
	CourseLevelAdvanced          CourseLevel = "ADVANCED"
)

func (l CourseLevel) IsValid() bool {
	switch l {
	case CourseLevelBeginner, CourseLevelElementary, CourseLevelIntermediate, CourseLevelUpperIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}
