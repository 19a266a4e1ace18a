package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Projects     *ProjectRepository
	Members      *MemberRepository
	People       *PersonRepository
	Companies    *CompanyRepository
	PersonalList *PersonalListRepository
	TimeEntries  *TimeEntryRepository
	Expenses     *ExpenseRepository
	Journal      *JournalRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Projects:     NewProjectRepository(database),
		Members:      NewMemberRepository(database),
		People:       NewPersonRepository(database),
		Companies:    NewCompanyRepository(database),
		PersonalList: NewPersonalListRepository(database),
		TimeEntries:  NewTimeEntryRepository(database),
		Expenses:     NewExpenseRepository(database),
		Journal:      NewJournalRepository(database),
	}
}
