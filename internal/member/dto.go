package member

import "github.com/samcomo/dbz-api-server/internal/model"

type RegisterRequest struct {
	Email     string   `json:"email" binding:"required,email,max=50"`
	Nickname  string   `json:"nickname" binding:"required,notblank,max=20"`
	Phone     string   `json:"phone" binding:"required,phone"`
	Password  string   `json:"password" binding:"required,min=8,max=15"`
	Address   string   `json:"address" binding:"required,notblank,max=255"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (r *RegisterRequest) Location() model.Location {
	return toLocation(r.Address, r.Latitude, r.Longitude)
}

type LocationRequest struct {
	Address   string   `json:"address" binding:"required,notblank,max=255"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (r *LocationRequest) Location() model.Location {
	return toLocation(r.Address, r.Latitude, r.Longitude)
}

// Latitude/longitude ranges are not validated: field names are kept as sent by clients.
func toLocation(address string, latitude, longitude *float64) model.Location {
	location := model.Location{Address: address}
	if latitude != nil {
		location.Latitude = *latitude
	}
	if longitude != nil {
		location.Longitude = *longitude
	}
	return location
}

type MyPageResponse struct {
	ID              uint32  `json:"id"`
	Email           string  `json:"email"`
	Nickname        string  `json:"nickname"`
	Phone           string  `json:"phone"`
	Role            string  `json:"role"`
	Status          string  `json:"status"`
	Address         string  `json:"address"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

func newMyPageResponse(member *model.Member) *MyPageResponse {
	return &MyPageResponse{
		ID:              member.ID,
		Email:           member.Email,
		Nickname:        member.Nickname,
		Phone:           member.Phone,
		Role:            string(member.Role),
		Status:          string(member.Status),
		Address:         member.Address,
		Latitude:        member.Latitude,
		Longitude:       member.Longitude,
		ProfileImageURL: member.ProfileImageURL,
	}
}
