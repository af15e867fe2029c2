package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"birthday_notification_bot/internal/domain"
)

// SignupArgs is a parsed /signup request. Range checks are left to the registration service.
type SignupArgs struct {
	Day   int
	Month int
	Year  *int
}

// ParseSignupArgs accepts "<day> <month> [year]" or a single "DD/MM[/YYYY]" (dots also work).
func ParseSignupArgs(args []string) (SignupArgs, error) {
	if len(args) == 1 {
		args = strings.FieldsFunc(args[0], func(r rune) bool { return r == '/' || r == '.' })
	}
	if len(args) < 2 || len(args) > 3 {
		return SignupArgs{}, fmt.Errorf("expected day, month and optional year: %w", domain.ErrInvalidArgument)
	}

	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return SignupArgs{}, fmt.Errorf("%q is not a number: %w", a, domain.ErrInvalidArgument)
		}
		nums[i] = n
	}

	out := SignupArgs{Day: nums[0], Month: nums[1]}
	if len(nums) == 3 {
		out.Year = &nums[2]
	}
	return out, nil
}

// ParsePage reads the optional page argument of /list, defaulting to 1.
func ParsePage(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("expected a single page number: %w", domain.ErrInvalidArgument)
	}
	page, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a page number: %w", args[0], domain.ErrInvalidArgument)
	}
	return page, nil
}

// ParseDestination reads the optional destination chat of /register_chat.
// Without an argument the current chat receives the notifications.
func ParseDestination(args []string, currentChatID int64) (int64, error) {
	if len(args) == 0 {
		return currentChatID, nil
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("expected a single chat ID: %w", domain.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%q is not a chat ID: %w", args[0], domain.ErrInvalidArgument)
	}
	return id, nil
}
