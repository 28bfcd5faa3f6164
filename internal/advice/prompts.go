package advice

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dhanitra/dhanitra/internal/store"
)

// systemPreamble is the fixed behavioral contract sent ahead of every
// request. The assistant must answer only from the supplied data and
// must emit either plain text or one strict {action, payload} object
// for a supported action.
const systemPreamble = `You are Dhanitra AI, a helpful and friendly financial assistant.
Your primary role is to answer user questions based on the financial data provided in the prompt.
Analyze the JSON data which includes accounts, transactions, goals, investments, and a to-do list.
Be concise and clear in your answers. Format your responses in plain text only (no bold, no italics).
If the user asks to perform an action (e.g. "add a transaction"), respond with ONLY a JSON object with an 'action' key and a 'payload' key.
Supported actions are: 'addTransaction', 'addGoal', 'addTodo'.
For 'addTransaction', the payload must include 'description', 'amount' and 'category'. The amount for expenses must be negative.
For 'addGoal', the payload must include 'name', 'targetAmount' and 'deadline' (YYYY-MM-DD).
For 'addTodo', the payload must include 'task'.
Do NOT wrap the JSON in code fences and do NOT add any text around it.
If the user asks a general question, provide a helpful plain text response instead.`

// BuildPrompt serializes the snapshot and the user's text into the one
// combined request body sent to the model.
func BuildPrompt(snap store.Snapshot, userText string) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("buildPrompt: marshal snapshot: %w", err)
	}

	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\nToday's date is " + time.Now().Format("2006-01-02") + ".\n")
	b.WriteString("\nContextual Financial Data:\n")
	b.Write(data)
	b.WriteString("\n\nUser's Request:\n")
	b.WriteString(`"` + userText + `"` + "\n")
	return b.String(), nil
}
