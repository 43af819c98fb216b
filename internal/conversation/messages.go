package conversation

// Commands and menu labels. Incoming text is matched against them exactly.
const (
	cmdStart  = "/start"
	cmdCancel = "/cancel"

	labelAsk            = "Ask a question"
	labelAdminPanel     = "Admin panel"
	labelViewAll        = "View all questions"
	labelFilterByPres   = "Filter by presenter"
	labelFilterByUser   = "Filter by user"
	labelAddPresenter   = "Add presenter"
	labelManageUsers    = "Manage users"
	labelPromote        = "Promote user to organizer"
	labelDemote         = "Demote organizer"
	labelBackToAdmin    = "Back to admin panel"
	labelBackToMainMenu = "Back to main menu"
	labelCancel         = "Cancel"
)

const (
	msgWelcomeNew       = "Welcome to the event Q&A bot!\n\nPlease register to continue.\nWhat is your full name?"
	msgWelcomeBack      = "Welcome, %s! What would you like to do?"
	msgMainMenu         = "What would you like to do?"
	msgAskName          = "Please enter your name:"
	msgAskEmail         = "Great! Now please enter your email address:"
	msgInvalidEmail     = "Please enter a valid email address:"
	msgRegistered       = "Registration complete! Welcome, %s!"
	msgRegisterFirst    = "Please register first with /start."
	msgNoPresenters     = "No presenters are available yet. Please contact an organizer."
	msgChoosePresenter  = "Which presenter would you like to ask?"
	msgInvalidPresenter = "Please choose a presenter from the list."
	msgAskText          = "You chose %s. Please type your question:"
	msgEmptyQuestion    = "Please type your question:"
	msgQuestionSent     = "Your question was submitted!"

	msgCancelled           = "Operation cancelled."
	msgCancelledUnregister = "Operation cancelled. Use /start to begin."
	msgFailure             = "Something went wrong, please try again."
	msgDenied              = "You do not have organizer access."

	msgAdminPanel        = "Admin panel - choose an option:"
	msgNoQuestions       = "No questions have been submitted yet."
	msgAllQuestions      = "All questions:"
	msgNoFilterOptions   = "No presenters are available."
	msgChooseFilter      = "Choose a presenter to filter questions:"
	msgNoPresenterQs     = "There are no questions for %s."
	msgPresenterQs       = "Questions for %s:"
	msgAskUserFilter     = "Enter a user name (or part of it) to filter questions:"
	msgNoUserQs          = "No questions found from users matching '%s'."
	msgUserQs            = "Questions from users matching '%s':"
	msgAskPresenterNames = "Send the presenter name (separate several names with commas):"
	msgPresentersAdded   = "Presenters added: %s"
	msgNoPresentersAdded = "No presenters were added."

	msgNoUsers         = "No users have registered yet."
	msgChooseAction    = "Choose an action:"
	msgNoPromotable    = "There are no users to promote."
	msgPromoteList     = "Non-organizer users (send a Telegram ID to promote):"
	msgNoDemotable     = "There are no organizers to demote."
	msgDemoteList      = "Organizers (send a Telegram ID to demote):"
	msgInvalidID       = "Invalid ID. Please send a numeric Telegram ID."
	msgPromoted        = "%s is now an organizer!"
	msgDemoted         = "%s is no longer an organizer."
	msgPromoteNotFound = "Could not promote user: user not found."
	msgDemoteNotFound  = "Could not demote user: user not found."
)

func mainMenu(isOrganizer bool) []string {
	if isOrganizer {
		return []string{labelAsk, labelAdminPanel}
	}
	return []string{labelAsk}
}

func adminMenu() []string {
	return []string{labelViewAll, labelFilterByPres, labelFilterByUser, labelAddPresenter, labelManageUsers, labelBackToMainMenu}
}

func roleMenu() []string {
	return []string{labelPromote, labelDemote, labelBackToAdmin}
}
