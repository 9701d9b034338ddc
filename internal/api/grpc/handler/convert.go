package handler

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/userkeeper-server/internal/apierror"
	"github.com/dtroode/userkeeper-server/internal/model"
)

// Struct field names shared by requests and responses.
const (
	fieldID        = "id"
	fieldEmail     = "email"
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
	fieldAvatar    = "avatar"
	fieldCreatedAt = "created_at"
)

func paramsFromStruct(s *structpb.Struct) (model.CreateUserParams, error) {
	fields := s.GetFields()

	id, err := int64Field(fields, fieldID)
	if err != nil {
		return model.CreateUserParams{}, err
	}

	params := model.CreateUserParams{
		ID:        id,
		Email:     fields[fieldEmail].GetStringValue(),
		FirstName: fields[fieldFirstName].GetStringValue(),
		LastName:  fields[fieldLastName].GetStringValue(),
	}
	if err := params.Validate(); err != nil {
		return model.CreateUserParams{}, err
	}

	return params, nil
}

func int64Field(fields map[string]*structpb.Value, name string) (int64, error) {
	v, ok := fields[name]
	if !ok {
		return 0, apierror.NewErrInvalidArgument(fmt.Sprintf("%s is required", name))
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, apierror.NewErrInvalidArgument(fmt.Sprintf("%s must be a number", name))
	}
	if num.NumberValue != math.Trunc(num.NumberValue) || math.Abs(num.NumberValue) > 1<<53 {
		return 0, apierror.NewErrInvalidArgument(fmt.Sprintf("%s must be an integer", name))
	}
	return int64(num.NumberValue), nil
}

func userToStruct(u model.User) (*structpb.Struct, error) {
	m := map[string]interface{}{
		fieldID:        u.ID,
		fieldEmail:     u.Email,
		fieldFirstName: u.FirstName,
		fieldLastName:  u.LastName,
		fieldAvatar:    u.Avatar,
	}
	if !u.CreatedAt.IsZero() {
		m[fieldCreatedAt] = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return structpb.NewStruct(m)
}

func profileToStruct(p model.RemoteProfile) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		fieldID:        p.ID,
		fieldEmail:     p.Email,
		fieldFirstName: p.FirstName,
		fieldLastName:  p.LastName,
		fieldAvatar:    p.Avatar,
	})
}
