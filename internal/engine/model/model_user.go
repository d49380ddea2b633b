package model

type User struct {
	BaseModel
	UserId      string `gorm:"column:user_id;uniqueIndex" json:"userId"`
	Username    string `gorm:"column:username" json:"username"`
	FirstName   string `gorm:"column:first_name" json:"firstName"`
	LastName    string `gorm:"column:last_name" json:"lastName"`
	Password    string `gorm:"column:password" json:"-"`
	Email       string `gorm:"column:email" json:"email"`
	Phone       string `gorm:"column:phone" json:"phone"`
	City        string `gorm:"column:city" json:"city"`
	Avatar      string `gorm:"column:avatar" json:"avatar"`
	IsEnabled   int    `gorm:"column:is_enabled;default:1" json:"isEnabled"`               // 0: disabled, 1: enabled
	IsSuperuser int    `gorm:"column:is_superuser;default:0" json:"isSuperuser"`           // 0: normal user, 1: superuser
}

func (User) TableName() string {
	return "t_user"
}

type Register struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type Login struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	UserInfo UserInfo          `json:"userInfo"`
	Token    map[string]string `json:"token"`
	ExpireAt int64             `json:"-"`
	CreateAt int64             `json:"-"`
}

type UserInfo struct {
	UserId    string `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Avatar    string `json:"avatar"`
}

// UpdateUserReq carries the editable user fields. Which of them the actor may
// touch is decided by the permission policy, not here.
type UpdateUserReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	City      *string `json:"city"`
}

// Fields lists the names of the fields present in the request.
func (r *UpdateUserReq) Fields() []string {
	var fields []string
	if r.FirstName != nil {
		fields = append(fields, "firstname")
	}
	if r.LastName != nil {
		fields = append(fields, "lastname")
	}
	if r.Password != nil {
		fields = append(fields, "password")
	}
	if r.Email != nil {
		fields = append(fields, "email")
	}
	if r.Phone != nil {
		fields = append(fields, "phone")
	}
	if r.City != nil {
		fields = append(fields, "city")
	}
	return fields
}

// TokenInfo token information stored in Redis
type TokenInfo struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpireAt     int64  `json:"expireAt"`
	CreateAt     int64  `json:"createAt"`
}
