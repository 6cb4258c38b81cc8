// Package tui is a terminal client for building a box. It shows the same
// cards as the web menu and applies the same control rules.
package tui

import (
	"errors"

	"mealbox/selection"
	"mealbox/web/pages/menu"
	"mealbox/web/pages/recipes"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages.
type loadedMsg struct {
	snap Snapshot
	err  error
}

type changedMsg struct {
	recipeID string
	action   recipes.Action
	err      error
}

// Model is the Bubble Tea model for the box builder
type Model struct {
	box    Box
	plan   selection.Plan
	keys   keyMap
	help   help.Model
	snap   Snapshot
	cards  []recipes.Card
	cursor int
	status string
	err    error
	width  int
}

// New creates the model. Call tea.NewProgram(New(...)).Run() to start.
func New(box Box, plan selection.Plan) Model {
	return Model{
		box:  box,
		plan: plan,
		keys: defaultKeys(),
		help: help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) load() tea.Msg {
	snap, err := m.box.Load()
	return loadedMsg{snap: snap, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setSnapshot(msg.snap)
		return m, nil

	case changedMsg:
		switch {
		case msg.err == nil:
			m.status = ""
		case errors.Is(msg.err, selection.ErrBoxFull), errors.Is(msg.err, selection.ErrRecipeLimit):
			m.status = msg.err.Error()
		default:
			m.err = msg.err
			return m, nil
		}
		return m, m.load
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.load
	case key.Matches(msg, m.keys.Add):
		card, ok := m.current()
		if !ok {
			return m, nil
		}
		if card.IncrementDisabled() {
			m.status = "You can't add more of " + card.Name
			return m, nil
		}
		return m, m.change(card.ID, recipes.ActionIncrement)
	case key.Matches(msg, m.keys.Remove):
		card, ok := m.current()
		if !ok || !card.IsSelected() {
			return m, nil
		}
		return m, m.change(card.ID, recipes.ActionDecrement)
	}
	return m, nil
}

// change dispatches a card action to the box off the update loop
func (m Model) change(recipeID string, action recipes.Action) tea.Cmd {
	box := m.box
	return func() tea.Msg {
		var err error
		cb := recipes.Callbacks{
			OnIncrement: func(id string) { err = box.Add(id) },
			OnDecrement: func(id string) { err = box.Remove(id) },
		}
		if dErr := cb.Dispatch(action, recipeID); dErr != nil {
			err = dErr
		}
		return changedMsg{recipeID: recipeID, action: action, err: err}
	}
}

func (m *Model) setSnapshot(snap Snapshot) {
	m.snap = snap
	m.cards = menu.Menu{
		Recipes:    snap.Recipes,
		Quantities: snap.Quantities,
		Plan:       m.plan,
	}.Cards()
	if m.cursor >= len(m.cards) {
		m.cursor = max(len(m.cards)-1, 0)
	}
}

func (m Model) current() (recipes.Card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return recipes.Card{}, false
	}
	return m.cards[m.cursor], true
}
