package util

import "errors"

var (
	ErrUserNotFound        = errors.New("ユーザーが見つかりません")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMaterialNotFound    = errors.New("material not found")
	ErrEmailRegistered     = errors.New("このメールアドレスは既に登録されています")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrRecordNotFound      = errors.New("record not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrSelfFollow          = errors.New("cannot follow yourself")
	ErrAlreadyFollowing    = errors.New("already following")
	ErrTargetSchoolLimit   = errors.New("target school limit reached (max 6)")
)
