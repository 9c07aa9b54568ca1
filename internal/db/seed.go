package db

import (
	"context"
	"database/sql"

	"github.com/vytor/pastorprompt/internal/logger"
)

const seedFolderName = "History Test"

type seedStory struct {
	event, introduction, trueVersion, fakeVersion, explanation string
}

var seedStories = []seedStory{
	{
		event:        "Moon Landing 1969",
		introduction: "The 1969 moon landing remains one of humanity's greatest technological achievements. But not everyone believes it happened as reported.",
		trueVersion:  "NASA's Apollo 11 landed humans on the moon on July 20, 1969.",
		fakeVersion:  "The Moon Landing was filmed in a Hollywood studio in 1969.",
		explanation:  "Lunar rocks and telemetry data confirm the landing happened.",
	},
	{
		event:        "Cleopatra's Death 30 BCE",
		introduction: "Cleopatra, the last pharaoh of Egypt, met a dramatic end during the Roman conquest. But the method of her death remains a source of myth.",
		trueVersion:  "Cleopatra died by snake bite in 30 BCE.",
		fakeVersion:  "Cleopatra died by drinking poisoned wine in 30 BCE.",
		explanation:  "Historical accounts confirm the snake bite, likely an asp.",
	},
	{
		event:        "Franco's Successor 1969",
		introduction: "Francisco Franco was Spain's authoritarian leader from 1939 to 1975, ruling with strict control after winning the Spanish Civil War. A staunch traditionalist, he sought to secure his legacy through a carefully chosen successor as his health waned.",
		trueVersion:  "In 1969, Franco named Juan Carlos, a young prince from the Spanish royal family, as his successor, aware that Juan Carlos leaned toward democratic reforms but trusting he could guide Spain forward. Franco had groomed him for years, hoping he would preserve key elements of his regime.",
		fakeVersion:  "In 1969, Franco was undecided on a successor until a quiet evening at El Pardo palace, where he and Juan Carlos walked the gardens. Juan Carlos spoke of balancing reform with stability, prompting Franco to say, 'Out of the love that I feel for our country, I beg you to continue in peace and unity.' Moved by this exchange, Franco named him successor the next morning.",
		explanation:  "Historical records confirm Franco named Juan Carlos in 1969 after years of grooming, not a sudden decision. No verified accounts support the garden meeting story.",
	},
	{
		event:        "Alcázar of Toledo 1936",
		introduction: "Francisco Franco was a Spanish general who emerged as a key leader of the Nationalist faction during the Spanish Civil War (1936-1939). His strategic choices in the conflict solidified his authority.",
		trueVersion:  "In July 1936, as the Spanish Civil War began, Nationalist troops under Colonel José Moscardó fortified themselves in the Alcázar of Toledo against Republican forces. By September the defenders endured starvation and constant bombardment. Franco chose to divert his army to relieve the Alcázar, valuing its symbolic importance over an immediate attack on Madrid.",
		fakeVersion:  "In September 1936, Nationalist troops were reportedly trapped in the Alcázar of Toledo under a fierce Republican siege. According to an obscure tale, Franco dismissed the Alcázar's fate, believing its loss would galvanize support for his cause, and instead launched a bold attack toward Madrid in early October 1936.",
		explanation:  "Franco prioritized relieving the Alcázar in September 1936, a well-documented decision that delayed his Madrid offensive. No historical evidence supports a 'Madrid blitz' in October 1936.",
	},
}

// Seed inserts a sample folder and stories when the store holds nothing but
// the General folder. It is a no-op otherwise.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	var folders, stories int
	if err := db.QueryRowContext(ctx, `SELECT (SELECT COUNT(*) FROM folders), (SELECT COUNT(*) FROM stories)`).Scan(&folders, &stories); err != nil {
		return false, err
	}
	if folders > 1 || stories > 0 {
		log.Debug("skipping seed data: %d folders, %d stories present", folders, stories)
		return false, nil
	}

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO folders (name) VALUES (?)`, seedFolderName)
		if err != nil {
			return err
		}
		folderID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO stories (folder_id, event, introduction, true_version, fake_version, explanation)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, s := range seedStories {
			if _, err := stmt.ExecContext(ctx, folderID, s.event, s.introduction, s.trueVersion, s.fakeVersion, s.explanation); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to seed data: %v", err)
		return false, err
	}

	log.Info("seeded folder %q with %d stories", seedFolderName, len(seedStories))
	return true, nil
}
