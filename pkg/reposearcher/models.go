package reposearcher

// Repository is a single search result.
type Repository struct {
	FullName    string // owner/name
	Description string // May be empty
	StarsCount  int    // Stargazer count
	URL         string // Web page of the repository
}

// Credentials is what the login form submits.
type Credentials struct {
	Username string
	Passcode string
}

// Session is the result of a successful login.
type Session struct {
	Login string // Account name as reported by the service
	Name  string // Display name, may be empty
	Token string
}
