package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/obkschool/chatgame/client/gateway"
	"github.com/obkschool/chatgame/client/lifecycle"
	"github.com/obkschool/chatgame/client/session"
	"github.com/obkschool/chatgame/client/view"
	"github.com/obkschool/chatgame/internal/model"
)

// consoleRenderer prints whole projections, every snapshot redraws its own
// section.
type consoleRenderer struct{}

func (consoleRenderer) ShowScreen(screen lifecycle.Screen) {
	switch screen {
	case lifecycle.ScreenWaiting:
		fmt.Println("\n=== Waiting room ===")
	case lifecycle.ScreenGame:
		fmt.Println("\n=== Game room ===")
	default:
		fmt.Println("\n=== Welcome ===")
	}
}

func (consoleRenderer) RenderPlayers(players []view.PlayerEntry) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		marks := ""
		if p.IsHost {
			marks += " [host]"
		}
		if p.IsSelf {
			marks += " [you]"
		}
		fmt.Printf("  %s %s%s\n", p.Avatar, p.Username, marks)
	}
}

func (consoleRenderer) RenderMessages(roomType model.RoomType, blocks []view.MessageBlock) {
	fmt.Printf("--- %s chat ---\n", roomType)
	for _, b := range blocks {
		tag := "<<"
		if b.Sent {
			tag = ">>"
		}
		fmt.Printf("%s [%s] %s %s: %s\n", tag, b.Time, b.Avatar, b.Username, b.Text)
	}
}

func (consoleRenderer) RenderTypingIndicator(text string) {
	if text != "" {
		fmt.Println(text)
	}
}

func (consoleRenderer) ShowError(message string) {
	fmt.Printf("Error: %s\n", message)
}

func main() {
	baseURL := os.Getenv("CHATGAME_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api/v1"
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Username: ")
	if !scanner.Scan() {
		return
	}
	username := scanner.Text()

	fmt.Printf("Avatar (%s): ", strings.Join(model.Avatars, " "))
	if !scanner.Scan() {
		return
	}
	avatar := strings.TrimSpace(scanner.Text())
	if avatar == "" {
		avatar = model.Avatars[0]
	}

	sess, err := session.New(username, avatar)
	if err != nil {
		fmt.Printf("Bad identity: %v\n", err)
		return
	}

	gw := gateway.NewClient(baseURL)
	ctrl := lifecycle.New(gw, sess, consoleRenderer{})
	ctx := context.Background()

	for {
		fmt.Println("\n1. Create room")
		fmt.Println("2. Join room")
		fmt.Println("3. Start game")
		fmt.Println("4. Send message")
		fmt.Println("5. Leave room")
		fmt.Println("0. Quit")
		fmt.Print("> ")

		if !scanner.Scan() {
			break
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			if err := ctrl.CreateRoom(ctx); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Room code: %s\n", ctrl.RoomID())
		case "2":
			fmt.Print("Room code: ")
			if !scanner.Scan() {
				return
			}
			code := model.RoomID(strings.TrimSpace(scanner.Text()))
			if err := ctrl.JoinRoom(ctx, code); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		case "3":
			if err := ctrl.StartGame(ctx); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		case "4":
			fmt.Print("Message: ")
			if !scanner.Scan() {
				return
			}
			text := scanner.Text()
			ctrl.InputChanged(text)
			if err := ctrl.SendMessage(ctx, text); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		case "5":
			ctrl.Leave(ctx)
		case "0":
			ctrl.Leave(ctx)
			return
		default:
			fmt.Println("Unknown choice")
		}
	}
}
