package api

import (
	"github.com/terraincognita07/sitelog/internal/services"
)

func (handler *Handler) withDependencies(deps Dependencies) *Handler {
	repos := deps.Repositories

	var observer services.DecisionObserver
	if deps.Recorder != nil {
		observer = deps.Recorder
	}

	handler.authService = services.NewAuthService(repos.Users)
	handler.permissions = services.NewPermissionEvaluator(repos.Projects, repos.Members, observer)
	handler.access = services.NewAccessResolver(repos.Projects)
	handler.entities = services.NewEntityReader(handler.permissions, repos.People, repos.Companies, repos.Users)
	handler.projectService = services.NewProjectService(handler.permissions, repos.Projects, deps.Geocoder)
	handler.rosterService = services.NewRosterService(handler.permissions, repos.People, repos.Companies)
	handler.legacyRoster = services.NewLegacyRosterService(handler.access, repos.People, repos.Companies)
	handler.memberService = services.NewMemberService(handler.permissions, repos.Members, repos.Users)
	handler.transferService = services.NewTransferService(handler.permissions, repos.PersonalList, repos.People, repos.Companies)
	handler.personalLists = services.NewPersonalListService(repos.PersonalList)
	handler.timeService = services.NewTimeService(handler.permissions, handler.access, repos.TimeEntries, repos.People, handler.location)
	handler.expenseService = services.NewExpenseService(handler.permissions, handler.access, repos.Expenses, repos.Companies, handler.location)
	handler.journalService = services.NewJournalService(
		handler.permissions,
		handler.access,
		repos.Journal,
		repos.Projects,
		deps.Weather,
		handler.location,
	)
	return handler
}
