package mail

type OutreachEmailData struct {
	Name     string
	OrgName  string
	Sender   string
	Calendly string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
