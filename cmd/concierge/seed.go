package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/quorumhq/concierge/config"
	"github.com/quorumhq/concierge/directory"
)

// runSeed loads demo attendees, sessions, and organizations into the
// directory so the assistant can be exercised without the registration
// system attached.
func runSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	store, err := directory.Open(directory.Config{
		Driver:          cfg.Directory.Driver,
		DSN:             cfg.Directory.DSN(),
		MaxIdleConns:    cfg.Directory.MaxIdleConns,
		MaxOpenConns:    cfg.Directory.MaxOpenConns,
		ConnMaxLifetime: cfg.Directory.ConnMaxLifetime,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open directory: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := seedDemoData(ctx, store); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Demo data loaded")
}

func seedDemoData(ctx context.Context, store *directory.Store) error {
	const conference = "Business Conference 2025"

	if err := store.SeedOrganizations(ctx,
		directory.Organization{
			ID:           "org-summit",
			Name:         "Summit Ventures",
			Description:  "Early-stage investment firm focused on industrial technology.",
			Location:     "Dubai, UAE",
			Website:      "https://summit.example.com",
			ContactEmail: "hello@summit.example.com",
		},
	); err != nil {
		return err
	}

	if err := store.SeedUsers(ctx,
		directory.User{
			RegistrationID: "REG-1001", QRCode: "QR-1001",
			FirstName: "Sarah", LastName: "Chen",
			Email: "sarah.chen@example.com", Attendee: true,
			ConferenceName: conference, OrganizationID: "org-summit",
			Company: "Summit Ventures", Location: "Dubai, UAE",
			Title: "Managing Partner", PrimaryStream: "Investment",
			SecondaryStream: "Manufacturing", ConferencePackage: "VIP",
		},
		directory.User{
			RegistrationID: "REG-1002", QRCode: "QR-1002",
			FirstName: "Omar", LastName: "Haddad",
			Email: "omar.haddad@example.com", Attendee: true,
			ConferenceName: conference,
			Company:        "Haddad Logistics", Location: "Amman, Jordan",
			Title: "CEO", PrimaryStream: "Logistics",
			ConferencePackage: "Standard",
		},
		directory.User{
			RegistrationID: "REG-1003", QRCode: "QR-1003",
			FirstName: "Priya", LastName: "Nair",
			Email: "priya.nair@example.com", Attendee: true,
			ConferenceName: conference,
			Company:        "Nair Textiles", Location: "Kochi, India",
			Title: "Founder", PrimaryStream: "Manufacturing",
			SecondaryStream: "Retail", ConferencePackage: "Standard",
		},
	); err != nil {
		return err
	}

	day15 := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	day16 := time.Date(2025, time.July, 16, 0, 0, 0, 0, time.UTC)
	at := func(day time.Time, hour, minute int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}

	return store.SeedSessions(ctx,
		directory.Session{
			Topic: "Opening Keynote: The Next Decade of Trade",
			SpeakerName: "Amira Khalil", RoomName: "Main Hall",
			TrackName: "Keynote", ConferenceDate: "2025-07-15",
			StartTime: at(day15, 9, 0), EndTime: at(day15, 10, 0),
			Description: "Macro trends reshaping cross-border commerce.",
		},
		directory.Session{
			Topic: "AI in Manufacturing", SpeakerName: "John Smith",
			RoomName: "Room A", TrackName: "Technology",
			ConferenceDate: "2025-07-15",
			StartTime:      at(day15, 11, 0), EndTime: at(day15, 12, 0),
			Description: "Applying machine learning on the factory floor.",
		},
		directory.Session{
			Topic: "Financing Family Businesses", SpeakerName: "Sarah Chen",
			RoomName: "Room B", TrackName: "Finance",
			ConferenceDate: "2025-07-15",
			StartTime:      at(day15, 14, 0), EndTime: at(day15, 15, 0),
			Description: "Capital structures for multi-generational firms.",
		},
		directory.Session{
			Topic: "Networking Breakfast", SpeakerName: "",
			RoomName: "Terrace", TrackName: "Networking",
			ConferenceDate: "2025-07-16",
			StartTime:      at(day16, 8, 0), EndTime: at(day16, 9, 30),
			Description: "Open networking with the attendee directory.",
		},
		directory.Session{
			Topic: "Closing Panel: Building Resilient Supply Chains",
			SpeakerName: "Omar Haddad", RoomName: "Main Hall",
			TrackName: "Logistics", ConferenceDate: "2025-07-16",
			StartTime: at(day16, 16, 0), EndTime: at(day16, 17, 0),
			Description: "Lessons from regional logistics operators.",
		},
	)
}
