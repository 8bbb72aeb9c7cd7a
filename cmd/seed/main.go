package main

import (
	"flag"
	"fmt"
	"log"

	"luxurystay/internal/config"
	"luxurystay/internal/database"
	"luxurystay/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	username string
	email    string
	password string
	role     domain.UserRole
}

var users = []seedUser{
	{"Admin", "admin@luxurystay.com", "admin123", domain.RoleAdmin},
	{"Maria Manager", "manager@luxurystay.com", "manager123", domain.RoleManager},
	{"Rita Reception", "reception@luxurystay.com", "reception123", domain.RoleReceptionist},
	{"Hank Housekeeping", "housekeeping@luxurystay.com", "house123", domain.RoleHousekeeping},
	{"Sam Staff", "staff@luxurystay.com", "staff123", domain.RoleHotelStaff},
	{"Grace Guest", "guest@luxurystay.com", "guest123", domain.RoleGuest},
}

type seedRoom struct {
	number    string
	roomType  domain.RoomType
	price     float64
	amenities []string
}

var rooms = []seedRoom{
	{"101", domain.RoomSingle, 90, []string{"WiFi", "TV"}},
	{"102", domain.RoomSingle, 90, []string{"WiFi", "TV"}},
	{"201", domain.RoomDouble, 140, []string{"WiFi", "TV", "Minibar"}},
	{"202", domain.RoomDouble, 140, []string{"WiFi", "TV", "Minibar"}},
	{"301", domain.RoomSuite, 260, []string{"WiFi", "TV", "Minibar", "Bathtub"}},
	{"401", domain.RoomDeluxe, 340, []string{"WiFi", "TV", "Minibar", "Balcony"}},
	{"501", domain.RoomPenthouse, 900, []string{"WiFi", "TV", "Minibar", "Balcony", "Jacuzzi", "Butler"}},
}

func main() {
	reset := flag.Bool("reset", false, "delete existing data before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	if *reset {
		log.Println("Cleaning old data...")
		for _, table := range []string{"messages", "tasks", "bookings", "rooms", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.Fatalf("clean %s: %v", table, err)
			}
		}
	}

	if err := seedUsers(db); err != nil {
		log.Fatal(err)
	}
	if err := seedRooms(db); err != nil {
		log.Fatal(err)
	}
	log.Println("Seed completed")
}

func seedUsers(db *gorm.DB) error {
	log.Println("Creating users...")
	for _, su := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.email, err)
		}
		u := domain.User{
			ID:           domain.NewID(),
			Username:     su.username,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		// existing accounts keep their password but get the seeded role
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).Create(&u)
		if res.Error != nil {
			return fmt.Errorf("create user %s: %w", su.email, res.Error)
		}
		log.Printf("User %s (%s): %s / %s", su.username, su.role, su.email, su.password)
	}
	return nil
}

func seedRooms(db *gorm.DB) error {
	log.Println("Creating rooms...")
	for _, sr := range rooms {
		r := domain.Room{
			ID:            domain.NewID(),
			RoomNumber:    sr.number,
			Type:          sr.roomType,
			PricePerNight: sr.price,
			Status:        domain.RoomAvailable,
			Description:   fmt.Sprintf("%s room %s", sr.roomType, sr.number),
			Amenities:     sr.amenities,
		}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&r)
		if res.Error != nil {
			return fmt.Errorf("create room %s: %w", sr.number, res.Error)
		}
		if res.RowsAffected == 0 {
			log.Printf("Room %s already exists", sr.number)
		}
	}
	log.Printf("Rooms: %d", len(rooms))
	return nil
}
