package handlers

import (
	userRepo "courtflow/database/repository/user"
)

// HandlerBundle carries the assembled handlers and the repositories the
// route middleware needs.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Case       *CaseHandler
	Reschedule *RescheduleHandler
	Admin      *AdminHandler
	User       *UserHandler
}
