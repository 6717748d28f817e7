// Package domain defines the persistence models for the medical-records
// service: identity (roles, persons, users), clinical actors (patients,
// doctors), catalog entities (medical areas, report types, health centers),
// and medical reports with their attached images. These types are mapped
// with GORM and form the core data layer of the application.
package domain

import "time"

// Role is a user role. Rows are seeded at startup (admin, doctor, staff)
// and referenced by User.RoleID.
type Role struct {
	ID        int       `json:"id"   gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(32);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Role.
func (Role) TableName() string { return "roles" }

// Well-known role names.
const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
	RoleStaff  = "staff"
)

// Person holds the civil identity shared by users, patients, and doctors.
// DNI is the national identity document and is unique across persons.
//
// Optional demographic fields are pointers so that "absent" and "empty" are
// distinguishable both in JSON payloads and in the database.
type Person struct {
	ID           int        `json:"id"            gorm:"primaryKey"`
	DNI          string     `json:"dni"           gorm:"type:varchar(20);not null;uniqueIndex"`
	FirstName    string     `json:"first_name"    gorm:"type:varchar(100);not null"`
	LastName     string     `json:"last_name"     gorm:"type:varchar(100);not null;index"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Gender       *string    `json:"gender,omitempty"        gorm:"type:varchar(16)"`
	PhoneNumber  *string    `json:"phone_number,omitempty"  gorm:"type:varchar(32)"`
	PrimaryEmail *string    `json:"primary_email,omitempty" gorm:"type:varchar(255)"`
	Address      *string    `json:"address,omitempty"       gorm:"type:varchar(255)"`
	City         *string    `json:"city,omitempty"          gorm:"type:varchar(100)"`
	Province     *string    `json:"province,omitempty"      gorm:"type:varchar(100)"`
	Country      *string    `json:"country,omitempty"       gorm:"type:varchar(100)"`
	PostalCode   *string    `json:"postal_code,omitempty"   gorm:"type:varchar(20)"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Person.
func (Person) TableName() string { return "persons" }

// User is a login account. Every user is backed by a Person and carries a
// Role. Password stores the bcrypt digest and is never serialized.
type User struct {
	ID        int       `json:"id"        gorm:"primaryKey"`
	Email     string    `json:"email"     gorm:"type:varchar(255);not null;uniqueIndex"`
	Password  string    `json:"-"         gorm:"type:varchar(100);not null"`
	RoleID    int       `json:"role_id"   gorm:"not null;index"`
	PersonID  int       `json:"person_id" gorm:"not null;index"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Role   Role   `json:"role,omitempty"   gorm:"foreignKey:RoleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Person Person `json:"person,omitempty" gorm:"foreignKey:PersonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Patient is the clinical record root for a Person. A person can be
// registered as a patient at most once (PersonID is unique). Patients are
// soft-deleted via IsDeleted so historical reports keep their reference.
type Patient struct {
	ID                       int       `json:"id"         gorm:"primaryKey"`
	PersonID                 int       `json:"person_id"  gorm:"not null;uniqueIndex"`
	SocialSecurityProviderID *int      `json:"social_security_provider_id,omitempty"`
	AffiliateNumber          *string   `json:"affiliate_number,omitempty"        gorm:"type:varchar(64)"`
	BloodGroup               *string   `json:"blood_group,omitempty"             gorm:"type:varchar(8)"`
	Allergies                *string   `json:"allergies,omitempty"               gorm:"type:text"`
	PreExistingConditions    *string   `json:"pre_existing_conditions,omitempty" gorm:"type:text"`
	Medications              *string   `json:"medications,omitempty"             gorm:"type:text"`
	IsDeleted                bool      `json:"is_deleted" gorm:"not null;default:false"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`

	Person Person `json:"person,omitempty" gorm:"foreignKey:PersonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Patient.
func (Patient) TableName() string { return "patients" }

// Doctor links a Person to a medical area with a unique license number.
// Doctors are never hard-deleted; delete deactivates them so existing
// reports keep a valid author.
type Doctor struct {
	ID            int       `json:"id"             gorm:"primaryKey"`
	PersonID      int       `json:"person_id"      gorm:"not null;index"`
	LicenseNumber string    `json:"license_number" gorm:"type:varchar(64);not null;uniqueIndex"`
	AreaID        int       `json:"area_id"        gorm:"not null;index"`
	IsActive      bool      `json:"is_active"      gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Person Person      `json:"person,omitempty" gorm:"foreignKey:PersonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Area   MedicalArea `json:"area,omitempty"   gorm:"foreignKey:AreaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Doctor.
func (Doctor) TableName() string { return "doctors" }

// MedicalArea is a specialty (cardiology, radiology, ...). Names are unique.
type MedicalArea struct {
	ID          int       `json:"id"   gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for MedicalArea.
func (MedicalArea) TableName() string { return "medical_areas" }

// ReportType classifies medical reports within a medical area.
type ReportType struct {
	ID          int       `json:"id"      gorm:"primaryKey"`
	Name        string    `json:"name"    gorm:"type:varchar(100);not null;uniqueIndex"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	AreaID      int       `json:"area_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Area MedicalArea `json:"area,omitempty" gorm:"foreignKey:AreaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for ReportType.
func (ReportType) TableName() string { return "report_types" }

// HealthCenter is the facility where a report was produced. Optional on
// reports.
type HealthCenter struct {
	ID        int       `json:"id"   gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(150);not null;uniqueIndex"`
	Address   *string   `json:"address,omitempty" gorm:"type:varchar(255)"`
	City      *string   `json:"city,omitempty"    gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for HealthCenter.
func (HealthCenter) TableName() string { return "health_centers" }

// MedicalReport is a clinical document authored by a doctor for a patient,
// classified by a report type and optionally tied to a health center.
// Attached images are cascade-deleted with the report.
type MedicalReport struct {
	ID           int       `json:"id"             gorm:"primaryKey"`
	PatientID    int       `json:"patient_id"     gorm:"not null;index:idx_report_patient"`
	DoctorID     int       `json:"doctor_id"      gorm:"not null;index"`
	ReportTypeID int       `json:"report_type_id" gorm:"not null;index"`
	CenterID     *int      `json:"center_id,omitempty" gorm:"index"`
	Title        string    `json:"title"          gorm:"type:varchar(255);not null"`
	Content      string    `json:"content"        gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at"     gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`

	Patient      Patient       `json:"patient,omitempty"     gorm:"foreignKey:PatientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Doctor       Doctor        `json:"doctor,omitempty"      gorm:"foreignKey:DoctorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ReportType   ReportType    `json:"report_type,omitempty" gorm:"foreignKey:ReportTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	HealthCenter *HealthCenter `json:"health_center,omitempty" gorm:"foreignKey:CenterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Images       []ReportImage `json:"images,omitempty"      gorm:"foreignKey:ReportID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for MedicalReport.
func (MedicalReport) TableName() string { return "medical_reports" }

// MaxImagesPerReport caps the number of images attachable to one report.
const MaxImagesPerReport = 20

// ReportImage is an image attached to a medical report, stored by URL.
type ReportImage struct {
	ID          int       `json:"id"        gorm:"primaryKey"`
	ReportID    int       `json:"report_id" gorm:"not null;index"`
	URL         string    `json:"url"       gorm:"type:varchar(512);not null"`
	ImageType   *string   `json:"image_type,omitempty"  gorm:"type:varchar(32)"`
	Description *string   `json:"description,omitempty" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for ReportImage.
func (ReportImage) TableName() string { return "report_images" }

// Principal is the authenticated identity attached to a request after token
// verification. It is built fresh per request from the token subject plus a
// user lookup and discarded when the request ends.
type Principal struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	RoleName string `json:"role"`
	RoleID   int    `json:"role_id"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.RoleName == RoleAdmin }
