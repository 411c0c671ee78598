package mapper

import (
	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:          u.Id,
		DisplayName: u.DisplayName,
		Level:       u.Level,
		Target:      u.Target,
		Hobby:       u.Hobby,
		CreatedAt:   u.CreatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:          u.Id,
		DisplayName: u.DisplayName,
		Level:       u.Level,
		Target:      u.Target,
		Hobby:       u.Hobby,
		CreatedAt:   u.CreatedAt,
	}
}
