package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/shopai/shopai-go/internal/models"
	"github.com/shopai/shopai-go/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat [initial query]",
	Short: "Chat with the shopping assistant",
	Long: `Start an interactive chat session with the shopping assistant.

Pass an initial query to get the first search going immediately.

Examples:
  shopai chat
  shopai chat "best phone under 20000"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	search, _, err := getGateways(ctx)
	if err != nil {
		return fmt.Errorf("init gateways: %w", err)
	}

	initialQuery := ""
	if len(args) == 1 {
		initialQuery = args[0]
	}

	conv := session.NewConversation(search, initialQuery)
	defer conv.Close()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return runPlainChat(ctx, conv)
	}

	p := tea.NewProgram(newChatModel(conv))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}
	return nil
}

// runPlainChat is the line-based fallback for piped input.
func runPlainChat(ctx context.Context, conv *session.Conversation) error {
	printed := 0
	flush := func() {
		msgs := conv.Messages()
		for _, m := range msgs[printed:] {
			printPlainMessage(m)
		}
		printed = len(msgs)
	}
	flush()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}
		conv.Submit(ctx, text)
		flush()
	}
	return scanner.Err()
}

func printPlainMessage(m models.Message) {
	switch m.Role {
	case models.RoleUser:
		fmt.Printf("you> %s\n", m.Content)
	default:
		fmt.Printf("shopai> %s\n", m.Content)
		for _, p := range m.Products {
			fmt.Printf("  - %s [%s] ₹%.0f (AI score %.0f)\n", p.Name, p.Platform, p.Price, p.AIScore)
		}
	}
}

// convUpdateMsg signals that the session transcript changed.
type convUpdateMsg struct{}

// chatModel is the bubbletea model for the chat session.
type chatModel struct {
	conv  *session.Conversation
	sub   chan struct{}
	input textinput.Model
	spin  spinner.Model
	theme Theme
	width int
	done  bool
}

// newChatModel creates the chat model over a live conversation session.
func newChatModel(conv *session.Conversation) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about products, prices, deals..."
	ti.Focus()

	return chatModel{
		conv:  conv,
		sub:   conv.Subscribe(),
		input: ti,
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		theme: defaultTheme,
		width: 80,
	}
}

// Init starts the subscription pump and the waiting spinner.
func (m chatModel) Init() tea.Cmd {
	return tea.Batch(m.waitForUpdate(), m.spin.Tick)
}

// Update handles messages and returns the updated model.
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.conv.Unsubscribe(m.sub)
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.conv.Awaiting() {
				return m, nil
			}
			m.input.SetValue("")
			return m, m.submit(text)
		case "ctrl+1", "ctrl+2", "ctrl+3":
			// Ctrl+number picks the matching follow-up suggestion.
			idx := int(msg.String()[5] - '1')
			if s := m.currentSuggestions(); idx < len(s) && !m.conv.Awaiting() {
				return m, m.submit(s[idx])
			}
			return m, nil
		}

	case convUpdateMsg:
		// The transcript is re-read on every render; just keep pumping.
		return m, m.waitForUpdate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs one blocking chat turn off the UI goroutine. The transcript
// updates arrive through the subscription channel.
func (m chatModel) submit(text string) tea.Cmd {
	conv := m.conv
	return func() tea.Msg {
		conv.Submit(context.Background(), text)
		return nil
	}
}

// waitForUpdate blocks on the subscription channel.
func (m chatModel) waitForUpdate() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		<-sub
		return convUpdateMsg{}
	}
}

// currentSuggestions returns the follow-ups attached to the latest assistant
// message, if any.
func (m chatModel) currentSuggestions() []string {
	msgs := m.conv.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == models.RoleAssistant {
			return msgs[i].Suggestions
		}
	}
	return nil
}

// View renders the transcript, the waiting indicator, and the input line.
func (m chatModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m chatModel) renderContent() string {
	if m.done {
		return m.theme.hintStyle().Render("Happy shopping!\n")
	}

	var b strings.Builder
	msgs := m.conv.Messages()
	for _, msg := range msgs {
		b.WriteString(m.renderMessage(msg))
	}

	if m.conv.Awaiting() {
		b.WriteString(m.spin.View() + m.theme.hintStyle().Render("Thinking...") + "\n")
	}

	b.WriteString("\n" + m.input.View() + "\n")
	b.WriteString(m.theme.hintStyle().Render("Enter to send • Ctrl+1..3 picks a suggestion • Esc to quit") + "\n")
	return b.String()
}

func (m chatModel) renderMessage(msg models.Message) string {
	var b strings.Builder
	switch msg.Role {
	case models.RoleUser:
		b.WriteString(m.theme.userStyle().Render("you") + "  " + msg.Content + "\n")
	default:
		b.WriteString(m.theme.assistantStyle().Render("shopai") + "  " + msg.Content + "\n")
		for _, p := range msg.Products {
			price := m.theme.priceStyle().Render(fmt.Sprintf("₹%.0f", p.Price))
			b.WriteString(fmt.Sprintf("    • %s [%s] %s (AI score %.0f)\n", p.Name, p.Platform, price, p.AIScore))
		}
		if len(msg.Suggestions) > 0 {
			parts := make([]string, len(msg.Suggestions))
			for i, s := range msg.Suggestions {
				parts[i] = fmt.Sprintf("[%d] %s", i+1, s)
			}
			b.WriteString(m.theme.hintStyle().Render("    Try: "+strings.Join(parts, "  ")) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
