package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdevries/fysio/internal/store"
)

// authModel gates the app until a user is signed in. Two huh forms, toggled
// with tab: sign in (email+password) and sign up (plus profile and
// therapist fields).
type authModel struct {
	store  *store.Store
	width  int
	height int

	signup bool
	form   *huh.Form

	// Form field pointers (survive value copies)
	email    *string
	password *string
	name     *string
	ptName   *string
	ptEmail  *string
}

func newAuthModel(s *store.Store) authModel {
	email, password, name, ptName, ptEmail := "", "", "", "", ""
	m := authModel{
		store:    s,
		email:    &email,
		password: &password,
		name:     &name,
		ptName:   &ptName,
		ptEmail:  &ptEmail,
	}
	m.form = m.buildForm()
	return m
}

func (a *authModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a authModel) buildForm() *huh.Form {
	if a.signup {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Email").Value(a.email).Validate(validateRequired),
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(a.password).Validate(validateRequired),
				huh.NewInput().Title("Your Name").Value(a.name).Validate(validateRequired),
				huh.NewInput().Title("Physical Therapist").Value(a.ptName),
				huh.NewInput().Title("Therapist Email").Value(a.ptEmail),
			).Title("Create Account"),
		).WithShowHelp(true).WithShowErrors(true)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(a.email).Validate(validateRequired),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(a.password).Validate(validateRequired),
		).Title("Sign In"),
	).WithShowHelp(true).WithShowErrors(true)
}

func (a authModel) Init() tea.Cmd {
	return a.form.Init()
}

func (a authModel) update(msg tea.Msg) (authModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "tab" {
			a.signup = !a.signup
			a.form = a.buildForm()
			return a, a.form.Init()
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		return a.submit()
	}

	return a, cmd
}

func (a authModel) submit() (authModel, tea.Cmd) {
	var (
		user *store.User
		err  error
	)
	if a.signup {
		user, err = a.store.SignUp(*a.email, *a.password, *a.name, *a.ptName, *a.ptEmail)
	} else {
		user, err = a.store.SignIn(*a.email, *a.password)
	}

	// Rebuild so the form is usable again either way.
	*a.password = ""
	a.form = a.buildForm()

	if err != nil {
		return a, tea.Batch(a.form.Init(), errorCmd("%v", err))
	}
	return a, func() tea.Msg { return signedInMsg{user: user} }
}

func (a authModel) view() string {
	w := a.width - 4
	if w < 20 {
		w = 20
	}

	mode := "Sign In"
	hint := "tab: create an account instead"
	if a.signup {
		mode = "Create Account"
		hint = "tab: sign in instead"
	}

	title := titleStyle.Render("fysio") + "  " + mutedStyle.Render("exercise tracker — "+mode)
	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		a.form.View(),
		"",
		mutedStyle.Render("  "+hint),
	)
	return activePanelStyle.Width(w).Render(content)
}
