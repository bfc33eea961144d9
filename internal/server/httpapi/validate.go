package httpapi

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/server/models"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 50
	passwordMinLen = 6
	titleMaxLen    = 100
	contentMaxLen  = 10000
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", common.ErrValidation)
	}
	return id, nil
}

func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		return fmt.Errorf("%w: username must be %d-%d characters", common.ErrValidation, usernameMinLen, usernameMaxLen)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < passwordMinLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, passwordMinLen)
	}
	return nil
}

func validateRole(role string) (models.Role, error) {
	if role == "" {
		return models.RoleStandard, nil
	}
	r := models.Role(role)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role", common.ErrValidation)
	}
	return r, nil
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 1 || n > titleMaxLen {
		return fmt.Errorf("%w: title must be 1-%d characters", common.ErrValidation, titleMaxLen)
	}
	return nil
}

func validateContent(content string) error {
	if utf8.RuneCountInString(content) > contentMaxLen {
		return fmt.Errorf("%w: content must be at most %d characters", common.ErrValidation, contentMaxLen)
	}
	return nil
}
