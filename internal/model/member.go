package model

type MemberRole string

const (
	RoleMember MemberRole = "MEMBER"
	RoleAdmin  MemberRole = "ADMIN"
)

type MemberStatus string

const (
	StatusActive   MemberStatus = "ACTIVE"
	StatusInactive MemberStatus = "INACTIVE"
)

// Member represents a registered account in the system
type Member struct {
	// Primary key - Oracle IDENTITY (auto-increment)
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	// Identity fields, immutable after registration
	Email    string `gorm:"column:email;type:VARCHAR(255);not null;uniqueIndex:idx_member_email"`       // 이메일 (unique)
	Nickname string `gorm:"column:nickname;type:VARCHAR(50);not null;uniqueIndex:idx_member_nickname"` // 닉네임 (unique)
	Password string `gorm:"column:password;type:VARCHAR(60);not null"`                                  // 암호화된 비밀번호
	Phone    string `gorm:"column:phone;type:VARCHAR(100);not null"`                                    // 핸드폰 번호

	Role   MemberRole   `gorm:"column:role;type:VARCHAR(20);not null"`
	Status MemberStatus `gorm:"column:status;type:VARCHAR(20);not null"`

	// Location triple, always updated together
	Address   string  `gorm:"column:address;type:VARCHAR(255);not null"`
	Latitude  float64 `gorm:"column:latitude;not null"`
	Longitude float64 `gorm:"column:longitude;not null"`

	ProfileImageURL *string `gorm:"column:profile_image_url;type:VARCHAR(1024)"` // 업로드 성공 시에만 설정

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "member"
}

// Location is the address/latitude/longitude triple of a member.
type Location struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// NewMember creates an ACTIVE member with the MEMBER role and no profile image.
// passwordHash must already be hashed (handled in service layer).
func NewMember(email, nickname, phone, passwordHash string, location Location) *Member {
	return &Member{
		Email:     email,
		Nickname:  nickname,
		Phone:     phone,
		Password:  passwordHash,
		Role:      RoleMember,
		Status:    StatusActive,
		Address:   location.Address,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	}
}

// Location returns the current location triple.
func (m Member) Location() Location {
	return Location{
		Address:   m.Address,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
}

// WithLocation returns a copy of the member with the location triple replaced.
func (m Member) WithLocation(location Location) *Member {
	m.Address = location.Address
	m.Latitude = location.Latitude
	m.Longitude = location.Longitude
	return &m
}

// WithProfileImage returns a copy of the member pointing at imageURL.
func (m Member) WithProfileImage(imageURL string) *Member {
	m.ProfileImageURL = &imageURL
	return &m
}
