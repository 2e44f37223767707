package router

// Scene names a destination and carries the state needed to build it.
type Scene interface {
	SceneName() string
	isScene()
}

// RepositoryList is the most popular repositories for a language.
type RepositoryList struct {
	InitialLanguage string // Empty uses constants.DefaultLanguage
}

// LanguageList lets the user pick a language. Choose receives the pick; the
// repository list passes its SetCurrentLanguage here.
type LanguageList struct {
	Filter  string
	Current string
	Choose  func(language string)
}

// Repository is the web page of one repository.
type Repository struct {
	URL string
}

// Login is the login form.
type Login struct{}

// ErrorMessage is a blocking message box.
type ErrorMessage struct {
	Title   string // Empty uses the localized default
	Message string
}

func (RepositoryList) SceneName() string { return "repository_list" }
func (LanguageList) SceneName() string   { return "language_list" }
func (Repository) SceneName() string     { return "repository" }
func (Login) SceneName() string          { return "login" }
func (ErrorMessage) SceneName() string   { return "error_message" }

func (RepositoryList) isScene() {}
func (LanguageList) isScene()   {}
func (Repository) isScene()     {}
func (Login) isScene()          {}
func (ErrorMessage) isScene()   {}
