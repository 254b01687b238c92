// cmd/chatcli/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"fraudguard/client"

	"go.uber.org/zap"
)

const help = `commands:
  /new      start a new session
  /history  show the turns the server keeps for this session
  /clear    forget this session on the server
  /quit     exit
anything else is sent as a message`

func main() {
	addr := flag.String("addr", "http://localhost:8080", "chat server base URL")
	flag.Parse()

	base, _ := zap.NewDevelopment()
	logger := base.Sugar()
	defer logger.Sync()

	ctx := context.Background()
	c := client.New(*addr)

	sessionID, err := c.NewSession(ctx)
	if err != nil {
		logger.Fatalw("Failed to create session", "addr", *addr, "error", err)
	}
	fmt.Printf("session %s\n%s\n", sessionID, help)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit":
			return
		case "/new":
			id, err := c.NewSession(ctx)
			if err != nil {
				logger.Errorw("Failed to create session", "error", err)
				continue
			}
			sessionID = id
			fmt.Printf("session %s\n", sessionID)
		case "/history":
			history, err := c.History(ctx, sessionID)
			if err != nil {
				logger.Errorw("Failed to fetch history", "session_id", sessionID, "error", err)
				continue
			}
			for i, msg := range history {
				fmt.Printf("%2d [%s] %s\n", i+1, msg.Role, msg.Content)
			}
		case "/clear":
			if err := c.ClearSession(ctx, sessionID); err != nil {
				logger.Errorw("Failed to clear session", "session_id", sessionID, "error", err)
				continue
			}
			fmt.Println("cleared")
		default:
			reply, err := c.Send(ctx, sessionID, line)
			if err != nil {
				logger.Errorw("Failed to send message", "session_id", sessionID, "error", err)
				continue
			}
			fmt.Println(reply.Content)
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Errorw("Failed to read input", "error", err)
	}
}
