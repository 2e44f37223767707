// Package login validates a username and passcode as they are typed and
// performs the login when asked.
package login

import (
	"log/slog"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/constants"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/validator"
)

// Authenticator exchanges a username and token for a session.
type Authenticator interface {
	Login(username, token string) rx.Single[reposearcher.Session]
}

// Input is what the screen feeds in: both fields on every keystroke, and the
// login button.
type Input struct {
	Username     rx.Observable[string]
	Passcode     rx.Observable[string]
	LoginTrigger rx.Observable[struct{}]
}

// Output is what the screen observes.
//
// LoginTrigger does not check validity; it only needs both fields to have
// emitted. Disabling the button while EverythingValid is false is up to the
// screen.
type Output struct {
	UsernameValid   rx.Observable[bool]
	PasscodeValid   rx.Observable[bool]
	EverythingValid rx.Observable[bool]
	Message         rx.Observable[string] // Validation failures and login failures
	Loading         rx.Observable[bool]
	LoginRequested  rx.Observable[reposearcher.Credentials]
	LoggedIn        rx.Observable[reposearcher.Session]
}

// ViewModel validates credentials as they are typed and logs in on request.
type ViewModel struct {
	auth     Authenticator
	username *validator.Validator
	passcode *validator.Validator
	logger   *slog.Logger
}

// New creates a ViewModel. Rule messages come from localizer; nil uses the
// default catalog.
func New(auth Authenticator, localizer *i18n.Localizer, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = reposearcher.Logger("login")
	}
	return &ViewModel{
		auth:     auth,
		username: UsernameValidator(localizer),
		passcode: PasscodeValidator(localizer),
		logger:   logger,
	}
}

// UsernameValidator requires at least three characters and both upper and
// lower case letters.
func UsernameValidator(localizer *i18n.Localizer) *validator.Validator {
	return validator.New(
		validator.MinLength(constants.MinUsernameLength,
			localizer.T(i18n.UsernameTooShort, map[string]any{"Min": constants.MinUsernameLength})),
		validator.HasUpperAndLower(localizer.T(i18n.UsernameCase)),
	)
}

// PasscodeValidator requires at least six characters.
func PasscodeValidator(localizer *i18n.Localizer) *validator.Validator {
	return validator.New(
		validator.MinLength(constants.MinPasscodeLength,
			localizer.T(i18n.PasscodeTooShort, map[string]any{"Min": constants.MinPasscodeLength})),
	)
}

type attempt struct {
	credentials reposearcher.Credentials
	session     reposearcher.Session
	err         error
}

// Transform implements reposearcher.Transformable.
func (vm *ViewModel) Transform(input Input) Output {
	username := orNever(input.Username)
	passcode := orNever(input.Passcode)

	usernameChecks := rx.Share(rx.Map(username, vm.username.Check))
	passcodeChecks := rx.Share(rx.Map(passcode, vm.passcode.Check))

	usernameValid := rx.Map(usernameChecks, valid)
	passcodeValid := rx.Map(passcodeChecks, valid)
	everythingValid := rx.CombineLatest2(usernameValid, passcodeValid, func(u, p bool) bool {
		return u && p
	})

	credentials := rx.CombineLatest2(username, passcode, func(u, p string) reposearcher.Credentials {
		return reposearcher.Credentials{Username: u, Passcode: p}
	})
	requested := rx.Share(rx.WithLatestFrom(orNever(input.LoginTrigger), credentials,
		func(_ struct{}, c reposearcher.Credentials) reposearcher.Credentials { return c }))

	loading := rx.NewBehavior(false)

	attempts := rx.SwitchMap(
		rx.Tap(requested, rx.OnNext(func(c reposearcher.Credentials) {
			vm.logger.Debug("login requested", "username", c.Username)
			loading.Next(true)
		})),
		func(c reposearcher.Credentials) rx.Observable[attempt] {
			ok := rx.Map(rx.Observable[reposearcher.Session](vm.auth.Login(c.Username, c.Passcode)),
				func(s reposearcher.Session) attempt { return attempt{credentials: c, session: s} })
			return rx.Catch(ok, func(err error, emit func(attempt)) {
				emit(attempt{credentials: c, err: err})
			})
		},
	)
	results := rx.Share(rx.Func[attempt](func(o rx.Observer[attempt]) rx.Subscription {
		return attempts.Subscribe(rx.Observer[attempt]{
			Next: func(a attempt) {
				loading.Next(false)
				if a.err != nil {
					vm.logger.Warn("login failed", "username", a.credentials.Username, "error", a.err)
				} else {
					vm.logger.Info("logged in", "login", a.session.Login)
				}
				o.Next(a)
			},
			Error:    o.Error,
			Complete: o.Complete,
		})
	}))

	messages := rx.Merge(
		failures(usernameChecks),
		failures(passcodeChecks),
		rx.Map(rx.Filter(results, func(a attempt) bool { return a.err != nil }), func(a attempt) string {
			return reposearcher.UserMessage(a.err)
		}),
	)

	return Output{
		UsernameValid:   usernameValid,
		PasscodeValid:   passcodeValid,
		EverythingValid: everythingValid,
		Message:         messages,
		Loading:         rx.AsObservable[bool](loading),
		LoginRequested:  requested,
		LoggedIn: rx.Map(rx.Filter(results, func(a attempt) bool { return a.err == nil }), func(a attempt) reposearcher.Session {
			return a.session
		}),
	}
}

func valid(r validator.Result) bool {
	return r.Valid
}

func failures(checks rx.Observable[validator.Result]) rx.Observable[string] {
	return rx.Map(rx.Filter(checks, func(r validator.Result) bool { return !r.Valid }), func(r validator.Result) string {
		return r.Message
	})
}

func orNever[T any](o rx.Observable[T]) rx.Observable[T] {
	if o == nil {
		return rx.Never[T]()
	}
	return o
}
