// internal/cli/handler.go
package cli

import (
	"context"
	"fmt"
	"io"

	"libraryinventory/internal/catalog"
)

// Handler implements the menu actions on top of a catalog store.
type Handler struct {
	service catalog.Service
	prompt  *Prompter
	out     io.Writer
}

func NewHandler(service catalog.Service, prompt *Prompter, out io.Writer) *Handler {
	return &Handler{service: service, prompt: prompt, out: out}
}

func (h *Handler) AddBook(ctx context.Context) error {
	fmt.Fprintln(h.out, "\n--- Add Book ---")
	title, err := h.prompt.Ask(ctx, "Title: ")
	if err != nil {
		return err
	}
	author, err := h.prompt.Ask(ctx, "Author: ")
	if err != nil {
		return err
	}
	isbn, err := h.prompt.Ask(ctx, "ISBN: ")
	if err != nil {
		return err
	}

	result := h.service.Add(ctx, catalog.NewRecord(title, author, isbn))
	if result.OK() {
		fmt.Fprintf(h.out, "Added: %s\n", title)
	}
	h.warnUnsaved(result)
	return nil
}

func (h *Handler) IssueBook(ctx context.Context) error {
	isbn, err := h.prompt.Ask(ctx, "\nEnter ISBN to issue: ")
	if err != nil {
		return err
	}

	result := h.service.Issue(ctx, isbn)
	switch result.Kind {
	case catalog.Issued:
		fmt.Fprintln(h.out, "Book issued.")
	case catalog.NotFound:
		fmt.Fprintf(h.out, "Could not issue book: no book with ISBN %s.\n", isbn)
	case catalog.AlreadyIssued:
		fmt.Fprintln(h.out, "Could not issue book: it is already issued.")
	default:
		fmt.Fprintf(h.out, "Could not issue book: status %s does not allow it.\n", result.Record.Status)
	}
	h.warnUnsaved(result)
	return nil
}

func (h *Handler) ReturnBook(ctx context.Context) error {
	isbn, err := h.prompt.Ask(ctx, "\nEnter ISBN to return: ")
	if err != nil {
		return err
	}

	result := h.service.Return(ctx, isbn)
	switch result.Kind {
	case catalog.Returned:
		fmt.Fprintln(h.out, "Book returned.")
	case catalog.NotFound:
		fmt.Fprintf(h.out, "Could not return book: no book with ISBN %s.\n", isbn)
	case catalog.AlreadyAvailable:
		fmt.Fprintln(h.out, "Could not return book: it is not issued.")
	default:
		fmt.Fprintf(h.out, "Could not return book: status %s does not allow it.\n", result.Record.Status)
	}
	h.warnUnsaved(result)
	return nil
}

func (h *Handler) ViewAll(ctx context.Context) error {
	fmt.Fprintln(h.out, "\n--- All Books ---")
	records := h.service.ListAll(ctx)
	if len(records) == 0 {
		fmt.Fprintln(h.out, "No books found.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintln(h.out, r.String())
	}
	return nil
}

func (h *Handler) Search(ctx context.Context) error {
	searchType, err := h.prompt.Ask(ctx, "\nSearch by (1) Title or (2) ISBN? ")
	if err != nil {
		return err
	}

	switch searchType {
	case "1":
		query, err := h.prompt.Ask(ctx, "Enter Title (partial): ")
		if err != nil {
			return err
		}
		results := h.service.FindByTitle(ctx, query)
		fmt.Fprintf(h.out, "\n--- %d Title Results ---\n", len(results))
		for _, r := range results {
			fmt.Fprintln(h.out, r.String())
		}
	case "2":
		query, err := h.prompt.Ask(ctx, "Enter ISBN (exact): ")
		if err != nil {
			return err
		}
		if r, ok := h.service.FindByISBN(ctx, query); ok {
			fmt.Fprintln(h.out, r.String())
		} else {
			fmt.Fprintln(h.out, "Book not found.")
		}
	default:
		fmt.Fprintln(h.out, "Invalid search option.")
	}
	return nil
}

func (h *Handler) warnUnsaved(result catalog.Result) {
	if result.PersistErr != nil {
		fmt.Fprintln(h.out, "Warning: the change could not be saved. Check logs.")
	}
}
