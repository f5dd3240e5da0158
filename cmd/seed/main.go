package main

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/nabnoey/TK-libralies-System/internal/config"
	"github.com/nabnoey/TK-libralies-System/internal/db"
	"github.com/nabnoey/TK-libralies-System/internal/model"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.KaraokeRoom{},
		&model.MovieSeat{},
		&model.Reservation{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	rooms, err := seedKaraokeRooms(gormDB)
	if err != nil {
		log.Fatalf("Failed to seed karaoke rooms: %v", err)
	}
	seats, err := seedMovieSeats(gormDB)
	if err != nil {
		log.Fatalf("Failed to seed movie seats: %v", err)
	}
	admins, err := seedAdmins(gormDB)
	if err != nil {
		log.Fatalf("Failed to seed admin users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Karaoke rooms created: %d", rooms)
	log.Printf("  - Movie seats created: %d", seats)
	log.Printf("  - Admin users created: %d", admins)
}

// seedKaraokeRooms creates the fixed set of rooms, skipping ones that exist.
func seedKaraokeRooms(gormDB *gorm.DB) (int, error) {
	created := 0
	for i := uint(1); i <= 3; i++ {
		room := model.KaraokeRoom{
			KaraokeID:     i,
			Name:          fmt.Sprintf("Karaoke Room %d", i),
			Image:         fmt.Sprintf("/images/karaoke-%d.jpg", i),
			Status:        true,
			CurrentStatus: model.ResourceAvailable,
		}
		result := gormDB.Where(model.KaraokeRoom{KaraokeID: i}).FirstOrCreate(&room)
		if result.Error != nil {
			return created, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

// seedMovieSeats creates the fixed set of seats, skipping ones that exist.
func seedMovieSeats(gormDB *gorm.DB) (int, error) {
	created := 0
	for i := uint(1); i <= 10; i++ {
		seat := model.MovieSeat{
			MovieID:       i,
			Name:          fmt.Sprintf("Seat %c%d", 'A'+rune((i-1)/5), (i-1)%5+1),
			Image:         "/images/movie-seat.jpg",
			Status:        true,
			CurrentStatus: model.ResourceAvailable,
		}
		result := gormDB.Where(model.MovieSeat{MovieID: i}).FirstOrCreate(&seat)
		if result.Error != nil {
			return created, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

// seedAdmins promotes the bootstrap operator account. Regular users are
// created on their first sign-in, so only the admin needs seeding.
func seedAdmins(gormDB *gorm.DB) (int, error) {
	admin := model.User{
		Email:    "admin@tk.university.ac.th",
		Name:     "TK Libraries Admin",
		Provider: "google",
		Role:     model.RoleAdmin,
	}
	result := gormDB.Where(model.User{Email: admin.Email}).
		Attrs(model.User{Name: admin.Name, Role: model.RoleAdmin}).
		FirstOrCreate(&admin)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 && admin.Role != model.RoleAdmin {
		admin.Role = model.RoleAdmin
		if err := gormDB.Save(&admin).Error; err != nil {
			return 0, err
		}
	}
	return int(result.RowsAffected), nil
}
