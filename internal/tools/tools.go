// Package tools defines the structured tool calls DARS exposes to the
// model and dispatches their side effects. Tool kinds form a closed set;
// routing is an exhaustive switch over the decoded call.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"github.com/Gassandrid/DARS/internal/humor"
	"github.com/Gassandrid/DARS/internal/todo"
	"github.com/Gassandrid/DARS/internal/vault"
)

// Call is one decoded tool invocation.
type Call interface{ isCall() }

type AdjustHumor struct {
	Level int `json:"humor_level"`
}

type ControlRGBLights struct {
	Hex  string `json:"color_hex"`
	Name string `json:"color_name"`
}

type NoteOp struct {
	Op      string `json:"operation"` // new, read, modify, delete
	Title   string `json:"title"`
	Content string `json:"content"`
}

type TodoOp struct {
	Op   string `json:"operation"` // add, list, complete, remove
	Name string `json:"name"`
	Due  string `json:"due_date"`
}

func (AdjustHumor) isCall()      {}
func (ControlRGBLights) isCall() {}
func (NoteOp) isCall()           {}
func (TodoOp) isCall()           {}

// Decode turns a model tool call into its typed variant. The humor range
// is validated at this boundary.
func Decode(name string, args string) (Call, error) {
	switch name {
	case "adjust_humor":
		var c AdjustHumor
		if err := json.Unmarshal([]byte(args), &c); err != nil {
			return nil, fmt.Errorf("decode adjust_humor: %w", err)
		}
		if c.Level < humor.Min || c.Level > humor.Max {
			return nil, fmt.Errorf("humor level %d out of range [%d,%d]", c.Level, humor.Min, humor.Max)
		}
		return c, nil
	case "control_rgb_lights":
		var c ControlRGBLights
		if err := json.Unmarshal([]byte(args), &c); err != nil {
			return nil, fmt.Errorf("decode control_rgb_lights: %w", err)
		}
		return c, nil
	case "note_operation":
		var c NoteOp
		if err := json.Unmarshal([]byte(args), &c); err != nil {
			return nil, fmt.Errorf("decode note_operation: %w", err)
		}
		return c, nil
	case "todo_operation":
		var c TodoOp
		if err := json.Unmarshal([]byte(args), &c); err != nil {
			return nil, fmt.Errorf("decode todo_operation: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

// Registry holds the state the tool handlers act on.
type Registry struct {
	Humor *humor.Level
	Notes *vault.Store
	Todos *todo.Store
}

// Dispatch executes one call and returns its transcript output: a FUNC:
// line confirming the side effect plus a verbal line for the reply. Store
// errors come back as FUNC: Error lines, never as Go errors.
func (r *Registry) Dispatch(c Call) string {
	switch c := c.(type) {
	case AdjustHumor:
		return r.adjustHumor(c)
	case ControlRGBLights:
		return controlLights(c)
	case NoteOp:
		return r.noteOp(c)
	case TodoOp:
		return r.todoOp(c)
	default:
		return fmt.Sprintf("FUNC: Error: Unhandled tool call %T\n%s", c,
			"Sorry, I don't recognize that request.")
	}
}

func (r *Registry) adjustHumor(c AdjustHumor) string {
	if err := r.Humor.Set(c.Level); err != nil {
		return "FUNC: Error: Invalid humor level\nPlease provide a humor level between 0 and 100."
	}
	return fmt.Sprintf("FUNC: Humor level changed to: %d/100\n"+
		"I've adjusted my personality to be %s. You should notice a difference in how I communicate now.",
		c.Level, humor.TierFor(c.Level))
}

var moodResponses = map[string]string{
	"red":    "The room should feel warmer and more energetic now.",
	"blue":   "The room should feel calmer and more peaceful now.",
	"green":  "The room should feel more natural and balanced now.",
	"purple": "The room should feel more creative and mysterious now.",
	"yellow": "The room should feel brighter and more cheerful now.",
	"white":  "The room should feel clean and crisp now.",
	"orange": "The room should feel cozy and welcoming now.",
}

func controlLights(c ControlRGBLights) string {
	verbal, ok := moodResponses[strings.ToLower(c.Name)]
	if !ok {
		verbal = fmt.Sprintf("I've adjusted the lighting to %s.", c.Name)
	}
	return fmt.Sprintf("FUNC: RGB lights changed to: %s\n%s", c.Hex, verbal)
}

func (r *Registry) noteOp(c NoteOp) string {
	switch c.Op {
	case "new":
		name, err := r.Notes.Create(c.Title, c.Content)
		if err != nil {
			return fmt.Sprintf("FUNC: Error: %v\nI couldn't create that note.", err)
		}
		return fmt.Sprintf("FUNC: Note created: %s\nI've created a new note titled '%s' in the vault.", name, c.Title)
	case "read":
		content, err := r.Notes.Read(c.Title)
		if err != nil {
			return fmt.Sprintf("FUNC: Error: %v\nI couldn't find a note titled '%s' in the vault.", err, c.Title)
		}
		// Body goes back for the model to summarize; the partitioner turns
		// it into a character count for the user.
		return "FUNC: NOTE_CONTENT_FOR_PROCESSING\n" + content
	case "modify":
		if err := r.Notes.Modify(c.Title, c.Content); err != nil {
			return fmt.Sprintf("FUNC: Error: %v\nI couldn't find a note titled '%s' to modify.", err, c.Title)
		}
		return fmt.Sprintf("FUNC: Note modified: %s.md\nI've updated the content of '%s'.", vault.SanitizeTitle(c.Title), c.Title)
	case "delete":
		if err := r.Notes.Delete(c.Title); err != nil {
			return fmt.Sprintf("FUNC: Error: %v\nI couldn't find a note titled '%s' to delete.", err, c.Title)
		}
		return fmt.Sprintf("FUNC: Note deleted: %s.md\nI've deleted the note '%s' from the vault.", vault.SanitizeTitle(c.Title), c.Title)
	default:
		return "FUNC: Error: Invalid operation\nSorry, valid note operations are: new, read, modify, delete."
	}
}

func (r *Registry) todoOp(c TodoOp) string {
	switch c.Op {
	case "add":
		item, err := r.Todos.Add(c.Name, c.Due)
		if err != nil {
			return fmt.Sprintf("FUNC: Error: %v\nI couldn't add that todo.", err)
		}
		return fmt.Sprintf("FUNC: Todo added: %s (due %s)\nI've added '%s' to your list, due %s.",
			item.Name, item.DueDate, item.Name, item.DueDate)
	case "list":
		items, err := r.Todos.List()
		if err != nil {
			return fmt.Sprintf("FUNC: Error: %v\nI couldn't read your todo list.", err)
		}
		if len(items) == 0 {
			return "FUNC: Todo list: empty\nYour todo list is empty."
		}
		out := fmt.Sprintf("FUNC: Todo list: %d items\nYou have %d items:", len(items), len(items))
		for _, it := range items {
			status := "pending"
			if it.Completed {
				status = "done"
			}
			out += fmt.Sprintf(" %s (due %s, %s);", it.Name, it.DueDate, status)
		}
		return out
	case "complete":
		item, err := r.Todos.Complete(c.Name)
		if err != nil {
			return fmt.Sprintf("FUNC: Error: %v\nI couldn't find a todo matching '%s'.", err, c.Name)
		}
		return fmt.Sprintf("FUNC: Todo completed: %s\nI've marked '%s' as done.", item.Name, item.Name)
	case "remove":
		item, err := r.Todos.Remove(c.Name)
		if err != nil {
			return fmt.Sprintf("FUNC: Error: %v\nI couldn't find a todo matching '%s'.", err, c.Name)
		}
		return fmt.Sprintf("FUNC: Todo removed: %s\nI've removed '%s' from your list.", item.Name, item.Name)
	default:
		return "FUNC: Error: Invalid operation\nSorry, valid todo operations are: add, list, complete, remove."
	}
}

// Definitions returns the function-tool declarations advertised to the
// model.
func Definitions() []openai.ChatCompletionToolUnionParam {
	return []openai.ChatCompletionToolUnionParam{
		openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        "adjust_humor",
			Description: openai.String("Adjust the humor level of DARS when the user requests a change in humor"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"humor_level": map[string]any{
						"type":        "integer",
						"description": "Humor level (0=serious to 100=extremely humorous)",
						"minimum":     0,
						"maximum":     100,
					},
				},
				"required": []string{"humor_level"},
			},
		}),
		openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        "control_rgb_lights",
			Description: openai.String("Control the RGB lights when the user requests a color change"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"color_hex":  map[string]any{"type": "string", "description": "Hex code of the desired color"},
					"color_name": map[string]any{"type": "string", "description": "Name of the desired color"},
				},
				"required": []string{"color_hex", "color_name"},
			},
		}),
		openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        "note_operation",
			Description: openai.String("Create, read, modify or delete markdown notes in the DARS vault"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"operation": map[string]any{
						"type": "string",
						"enum": []string{"new", "read", "modify", "delete"},
					},
					"title":   map[string]any{"type": "string", "description": "Title of the note"},
					"content": map[string]any{"type": "string", "description": "Content for a new note or modification"},
				},
				"required": []string{"operation"},
			},
		}),
		openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        "todo_operation",
			Description: openai.String("Add, list, complete or remove items on the todo list"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"operation": map[string]any{
						"type": "string",
						"enum": []string{"add", "list", "complete", "remove"},
					},
					"name":     map[string]any{"type": "string", "description": "Item name, or a fragment of it"},
					"due_date": map[string]any{"type": "string", "description": "Due date: today, tomorrow, next week, or YYYY-MM-DD"},
				},
				"required": []string{"operation"},
			},
		}),
	}
}
