package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var greetings = [...]string{
	"Scouts are watching. Your profile is not.",
	"Game day is coming. Are you on the list?",
	"Every highlight reel starts with a sign-in.",
	"The bench is comfortable. The court is better.",
	"Stats don't post themselves.",
	"Tryouts fill up fast. Just saying.",
	"Coaches search by position. Give them one to find.",
	"You miss 100% of the events you don't register for.",
}

// printGreeting is shown to signed-out users in place of account details.
func printGreeting(p *printer) {
	msg := greetings[rand.Intn(len(greetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fb923c")).
		Bold(true).
		Render("SPORTEX")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To sign in: sportex login --email you@example.com")

	p.Println(fmt.Sprintf("\n%s\n\n%s\n\n%s\n", title, quote, hint))
}
