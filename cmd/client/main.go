package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Davidshtp/Dashboard/internal/client/gateway"
	"github.com/Davidshtp/Dashboard/internal/client/store"
)

var (
	version   string
	buildDate string
)

// app bundles the injected state containers the shell works with.
type app struct {
	gw         *gateway.Client
	session    *store.Session
	categories *store.CategoryStore
	items      *store.ItemStore
	recovery   *store.Recovery
}

// requireAuth is the navigation gate: re-evaluated before every protected
// command.
func (a *app) requireAuth() bool {
	if !a.session.IsAuthenticated() {
		fmt.Println("Please login first")
		return false
	}
	return true
}

func (a *app) refresh(ctx context.Context) {
	if err := a.categories.FetchAll(ctx); err != nil {
		fmt.Println("fetch categories:", err)
	}
	if err := a.items.FetchAll(ctx); err != nil {
		fmt.Println("fetch items:", err)
	}
}

func (a *app) listCategories() {
	for _, c := range a.categories.Categories() {
		fmt.Printf("ID: %s\nName: %s\n---\n", c.ID, c.Name)
	}
}

func (a *app) listItems() {
	for _, it := range a.items.Items() {
		fmt.Printf("ID: %s\nName: %s\nDescription: %s\nQuantity: %d\nPrice: %s\nCategory: %s\n---\n",
			it.ID, it.Name, it.Description, it.Quantity, it.Price.StringFixed(2), it.CategoryID)
	}
}

func (a *app) whoami() {
	u := a.session.User()
	if u == nil {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("ID: %s\nName: %s %s\nEmail: %s\n", u.ID, u.Name, u.LastName, u.Email)
}

// repl runs the interactive shell loop, accepting commands to manage the
// session, categories, items and the profile.
func repl(a *app) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Session:", a.session.Restore(ctx))
	if a.session.IsAuthenticated() {
		a.refresh(ctx)
	}

	for {
		fmt.Print("dashboard> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register, login, logout, whoami,")
			fmt.Println("  categories, addcat <name>, editcat <id> <name>, rmcat <id>,")
			fmt.Println("  items, additem, edititem <id>, rmitem <id>, bycat <id>,")
			fmt.Println("  setname <first> <last>, setemail <email>, setpassword, setavatar <file>,")
			fmt.Println("  forgot <email>, resetpw <code>, exit")
		case "register":
			in := gateway.RegisterInput{
				Name:     prompt(scanner, "First name: "),
				LastName: prompt(scanner, "Last name: "),
				Email:    prompt(scanner, "Email: "),
				Password: prompt(scanner, "Password: "),
			}
			if _, err := a.session.Register(ctx, in); err != nil {
				fmt.Println("register failed:", err)
				continue
			}
			fmt.Println("Registered. Use 'login' to start a session.")
		case "login":
			email := prompt(scanner, "Email: ")
			password := prompt(scanner, "Password: ")
			if _, err := a.session.Login(ctx, email, password); err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Println("Logged in")
			a.refresh(ctx)
		case "logout":
			a.session.Logout()
			fmt.Println("Logged out")
		case "whoami":
			a.whoami()
		case "categories":
			if !a.requireAuth() {
				continue
			}
			if err := a.categories.FetchAll(ctx); err != nil {
				fmt.Println("fetch failed:", err)
				continue
			}
			a.listCategories()
		case "addcat":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: addcat <name>")
				continue
			}
			c, err := a.categories.Add(ctx, strings.Join(args[1:], " "))
			if err != nil {
				fmt.Println("add failed:", err)
				continue
			}
			fmt.Println("Created category", c.ID)
		case "editcat":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 3 {
				fmt.Println("Usage: editcat <id> <name>")
				continue
			}
			if _, err := a.categories.Update(ctx, args[1], strings.Join(args[2:], " ")); err != nil {
				fmt.Println("update failed:", err)
				continue
			}
			fmt.Println("Category updated")
		case "rmcat":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: rmcat <id>")
				continue
			}
			if err := a.categories.Remove(ctx, args[1]); err != nil {
				fmt.Println("delete failed:", err)
				continue
			}
			fmt.Println("Category deleted")
		case "items":
			if !a.requireAuth() {
				continue
			}
			if err := a.items.FetchAll(ctx); err != nil {
				fmt.Println("fetch failed:", err)
				continue
			}
			a.listItems()
		case "additem":
			if !a.requireAuth() {
				continue
			}
			in, err := promptItem(scanner)
			if err != nil {
				fmt.Println(err)
				continue
			}
			it, err := a.items.Add(ctx, in)
			if err != nil {
				fmt.Println("add failed:", err)
				continue
			}
			fmt.Println("Created item", it.ID)
		case "edititem":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: edititem <id>")
				continue
			}
			in, err := promptItem(scanner)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if _, err := a.items.Update(ctx, args[1], in); err != nil {
				fmt.Println("update failed:", err)
				continue
			}
			fmt.Println("Item updated")
		case "rmitem":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: rmitem <id>")
				continue
			}
			if err := a.items.Remove(ctx, args[1]); err != nil {
				fmt.Println("delete failed:", err)
				continue
			}
			fmt.Println("Item deleted")
		case "bycat":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: bycat <category-id>")
				continue
			}
			items, err := a.gw.ItemsByCategory(ctx, args[1])
			if err != nil {
				fmt.Println("fetch failed:", err)
				continue
			}
			for _, it := range items {
				fmt.Printf("ID: %s Name: %s Quantity: %d\n", it.ID, it.Name, it.Quantity)
			}
		case "setname":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 3 {
				fmt.Println("Usage: setname <first> <last>")
				continue
			}
			u := a.session.User()
			updated, err := a.gw.UpdateProfile(ctx, u.ID, gateway.ProfileUpdate{Name: &args[1], LastName: &args[2]})
			if err != nil {
				fmt.Println("update failed:", err)
				continue
			}
			a.session.SetUser(updated)
			fmt.Println("Profile updated")
		case "setemail":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: setemail <email>")
				continue
			}
			u := a.session.User()
			if err := store.ValidateNewEmail(u.Email, args[1]); err != nil {
				fmt.Println(err)
				continue
			}
			updated, err := a.gw.UpdateEmail(ctx, u.ID, args[1])
			if err != nil {
				fmt.Println("update failed:", err)
				continue
			}
			a.session.SetUser(updated)
			fmt.Println("Email updated")
		case "setpassword":
			if !a.requireAuth() {
				continue
			}
			current := prompt(scanner, "Current password: ")
			next := prompt(scanner, "New password: ")
			confirm := prompt(scanner, "Confirm new password: ")
			if err := store.ValidatePasswordChange(current, next, confirm); err != nil {
				fmt.Println(err)
				continue
			}
			u := a.session.User()
			updated, err := a.gw.ChangePassword(ctx, u.ID, current, next)
			if err != nil {
				fmt.Println("update failed:", err)
				continue
			}
			a.session.SetUser(updated)
			fmt.Println("Password changed")
		case "setavatar":
			if !a.requireAuth() {
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: setavatar <file>")
				continue
			}
			uri, err := store.PrepareAvatar(args[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			u := a.session.User()
			updated, err := a.gw.UpdateProfile(ctx, u.ID, gateway.ProfileUpdate{Avatar: &uri})
			if err != nil {
				fmt.Println("update failed:", err)
				continue
			}
			a.session.SetUser(updated)
			fmt.Println("Avatar updated")
		case "forgot":
			if len(args) < 2 {
				fmt.Println("Usage: forgot <email>")
				continue
			}
			if err := a.recovery.Request(ctx, args[1]); err != nil {
				fmt.Println("request failed:", err)
				continue
			}
			fmt.Println(a.recovery.Message())
		case "resetpw":
			if len(args) < 2 {
				fmt.Println("Usage: resetpw <code>")
				continue
			}
			next := prompt(scanner, "New password: ")
			confirm := prompt(scanner, "Confirm new password: ")
			if err := a.recovery.Confirm(ctx, args[1], next, confirm); err != nil {
				fmt.Println("reset failed:", err)
				continue
			}
			fmt.Println("Password reset. Use 'login' with the new password.")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func promptItem(scanner *bufio.Scanner) (gateway.ItemInput, error) {
	var in gateway.ItemInput
	in.Name = prompt(scanner, "Name: ")
	in.Description = prompt(scanner, "Description: ")

	qty, err := strconv.Atoi(prompt(scanner, "Quantity: "))
	if err != nil {
		return in, fmt.Errorf("invalid quantity: %w", err)
	}
	in.Quantity = qty

	price, err := decimal.NewFromString(prompt(scanner, "Price: "))
	if err != nil {
		return in, fmt.Errorf("invalid price: %w", err)
	}
	in.Price = price

	in.CategoryID = prompt(scanner, "Category ID: ")
	return in, nil
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL   string
		tokenFile string
		showVer   bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&tokenFile, "token-file", "token.txt", "path to the stored session token")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Dashboard Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	gw := gateway.New(baseURL, http.DefaultClient)
	session := store.NewSession(gw, &store.FileTokenStore{Path: tokenFile})
	categories := store.NewCategoryStore(gw)
	items := store.NewItemStore(gw)

	// Cross-store checks: category deletion is blocked by cached items, and
	// items must reference a cached category.
	categories.InUse = items.HasCategory
	items.CategoryExists = categories.Exists

	a := &app{
		gw:         gw,
		session:    session,
		categories: categories,
		items:      items,
		recovery:   store.NewRecovery(gw),
	}
	repl(a)
}
