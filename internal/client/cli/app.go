package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dkrasnovs/notekeeper/internal/client/api"
	"github.com/dkrasnovs/notekeeper/internal/client/config"
	"github.com/dkrasnovs/notekeeper/internal/common"
)

type App struct {
	config *config.Config
	client *api.Client
	email  string
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	return &App{config: c, client: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	fmt.Println("NoteKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.showLogin, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.client.IsLoggedIn()
}

func (a *App) showLogin() string {
	if a.isLoggedIn() {
		return a.email
	}
	return "not logged in"
}

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, username, email, string(password)); err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	a.email = email
	fmt.Println("Registered and logged in as", email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	a.email = email
	fmt.Println("Logged in as", email)
	return nil
}

func (a *App) AddNote(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}

	note, err := a.client.CreateNote(ctx, title, content)
	if err != nil {
		fmt.Println("Creating note failed:", err)
		return err
	}

	fmt.Println("Created note", note.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	notes, err := a.client.ListNotes(ctx)
	if err != nil {
		fmt.Println("Listing notes failed:", err)
		return err
	}

	if len(notes) == 0 {
		fmt.Println("No notes yet")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("%s  %s  %s\n", n.ID, n.CreatedAt.Format("2006-01-02 15:04"), n.Title)
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Note id", os.Stdout)
	if err != nil {
		return err
	}

	note, err := a.client.GetNote(ctx, id)
	if err != nil {
		fmt.Println("Fetching note failed:", err)
		return err
	}

	fmt.Println(note.Title)
	fmt.Println(note.Content)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Note id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.DeleteNote(ctx, id); err != nil {
		fmt.Println("Deleting note failed:", err)
		return err
	}

	fmt.Println("Deleted")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.email = ""
	fmt.Println("Logged out")
	return nil
}
