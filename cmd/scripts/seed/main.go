package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/locallibrary/catalog/pkg/bookinstances"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/database"
	"github.com/locallibrary/catalog/pkg/migrations"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/robinjoseph08/golib/logger"
)

// loanPeriod is how far out the due date of a seeded unavailable copy is.
const loanPeriod = 14 * 24 * time.Hour

func main() {
	ctx := context.Background()
	log := logger.New()

	var opts struct {
		Titles  []string `short:"t" long:"title" description:"Title of a book to add (repeatable)" required:"true"`
		Copies  int      `short:"c" long:"copies" description:"Copies to add per book" default:"1"`
		Imprint string   `short:"i" long:"imprint" description:"Imprint of every copy" default:"Seeded"`
		Status  string   `short:"s" long:"status" description:"Status of every copy" default:"Available" choice:"Available" choice:"Maintenance" choice:"Loaned" choice:"Reserved"`
	}

	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		fmt.Println("go run ./cmd/scripts/seed -t <title> [-t <title>...] [-c copies] [-s status]")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	bookService := books.NewService(db)
	bookInstanceService := bookinstances.NewService(db)

	for _, title := range opts.Titles {
		book := &models.Book{Title: title}
		if err := bookService.CreateBook(ctx, book); err != nil {
			log.Err(err).Fatal("create book error")
		}

		for i := 0; i < opts.Copies; i++ {
			bi := &models.BookInstance{
				BookID:  book.ID,
				Imprint: opts.Imprint,
				Status:  opts.Status,
			}
			if opts.Status != models.BookInstanceStatusAvailable {
				due := time.Now().UTC().Add(loanPeriod).Truncate(24 * time.Hour)
				bi.DueBack = &due
			}
			if err := bookInstanceService.CreateBookInstance(ctx, bi); err != nil {
				log.Err(err).Fatal("create book instance error")
			}
		}

		log.Info("seeded book", logger.Data{"id": book.ID, "title": title, "copies": opts.Copies})
	}
}
