package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"
)

var subjects = []string{"math", "cs", "physics", "history", "writing"}

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "backend base URL")
	userCount := flag.Int("users", 4, "number of simulated users")
	rounds := flag.Int("rounds", 3, "study rounds per user")
	flag.Parse()

	client := NewAPIClient(*baseURL)
	run := time.Now().UnixNano()

	// Register users
	users := make([]*User, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		username := fmt.Sprintf("sim_%d_%d", run, i)
		user, err := client.CreateUser(username, "simpassword", "", "default")
		if err != nil {
			log.Fatalf("create user %s: %v", username, err)
		}
		users = append(users, user)
		log.Printf("created user %s (%s)", user.Username, user.ID)
	}

	// Befriend neighbours: each user requests the next one, who accepts.
	for i := 0; i < len(users)-1; i++ {
		sender, receiver := users[i], users[i+1]
		if _, err := client.SendFriendRequest(sender.Username, receiver.Username); err != nil {
			log.Fatalf("friend request %s -> %s: %v", sender.Username, receiver.Username, err)
		}
		if _, err := client.AcceptFriendRequest(receiver.Username, sender.Username); err != nil {
			log.Fatalf("accept %s <- %s: %v", receiver.Username, sender.Username, err)
		}
		log.Printf("%s and %s are now friends", sender.Username, receiver.Username)
	}

	// Study rounds: start a session, let it run briefly, then end or
	// cancel it. Cancelled time must never show up in totals.
	for round := 0; round < *rounds; round++ {
		for _, user := range users {
			tags := []string{subjects[rand.Intn(len(subjects))]}
			if _, err := client.StartSession(user.ID, tags); err != nil {
				log.Fatalf("start session for %s: %v", user.Username, err)
			}

			time.Sleep(time.Duration(500+rand.Intn(1500)) * time.Millisecond)

			if rand.Intn(4) == 0 {
				if _, err := client.CancelSession(user.ID); err != nil {
					log.Fatalf("cancel session for %s: %v", user.Username, err)
				}
				log.Printf("%s cancelled round %d", user.Username, round+1)
				continue
			}

			session, err := client.EndSession(user.ID)
			if err != nil {
				log.Fatalf("end session for %s: %v", user.Username, err)
			}
			log.Printf("%s studied %.2fs (%v)", user.Username, session.TimeElapsed, tags)
		}
	}

	// Summary
	list, err := client.ListUsers()
	if err != nil {
		log.Fatalf("list users: %v", err)
	}
	fmt.Println("\n=== Simulation summary ===")
	for _, user := range list.Users {
		if len(user.Username) < 4 || user.Username[:4] != "sim_" {
			continue
		}
		fmt.Printf("%-24s lvl %d  total %.2fs  sessions %d  friends %d\n",
			user.Username, user.Lvl, user.Time, len(user.Sessions), len(user.Friends))
	}

	board, err := client.Leaderboard()
	if err != nil {
		log.Fatalf("leaderboard: %v", err)
	}
	fmt.Println("\n=== Leaderboard ===")
	for _, entry := range board.Leaderboard {
		fmt.Printf("#%d %-24s %.2fs\n", entry.Rank, entry.Username, entry.Time)
	}
}
