package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/pawel3ala/wavestone/pkg/catalogclient"
)

const usage = `usage: catalogctl <command> [flags]

commands:
  register -u <username> -p <password>
  login    -u <username> -p <password>
  logout
  list     [-category <name>] [-sort name|price|dateAdded|category] [-desc]
  get      <id>
  create   -name <name> -price <price> -date <iso-date> -category <name>
  update   <id> [-name <name>] [-price <price>] [-date <iso-date>] [-category <name>]
  delete   <id>

The API base URL comes from CATALOG_URL (default http://localhost:8080).`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := godotenv.Load(".env"); err == nil {
		log.Println("loaded .env")
	}

	baseURL := os.Getenv("CATALOG_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	session, err := catalogclient.NewFileSessionStore(os.Getenv("CATALOG_SESSION_FILE"))
	if err != nil {
		log.Fatal(err)
	}
	client := catalogclient.New(baseURL, session)
	ctx := context.Background()

	switch os.Args[1] {
	case "register":
		username, password := credentialFlags("register")
		msg, err := client.Register(ctx, username, password)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(msg)

	case "login":
		username, password := credentialFlags("login")
		if err := client.Login(ctx, username, password); err != nil {
			log.Fatal(err)
		}
		fmt.Println("logged in")

	case "logout":
		if err := client.SignOut(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("logged out")

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		category := fs.String("category", "", "filter by category")
		sortKey := fs.String("sort", "name", "sort key: name|price|dateAdded|category")
		desc := fs.Bool("desc", false, "sort descending")
		fs.Parse(os.Args[2:])

		items, err := client.Products(ctx)
		if err != nil {
			log.Fatal(err)
		}
		items = catalogclient.FilterByCategory(items, *category)
		order := catalogclient.Ascending
		if *desc {
			order = catalogclient.Descending
		}
		items = catalogclient.SortProducts(items, catalogclient.SortKey(*sortKey), order)
		printJSON(items)

	case "get":
		p, err := client.Product(ctx, idArg("get"))
		if err != nil {
			log.Fatal(err)
		}
		printJSON(p)

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		name := fs.String("name", "", "product name")
		price := fs.Float64("price", 0, "product price")
		date := fs.String("date", "", "date added (ISO-8601)")
		category := fs.String("category", "", "Electronics, Clothing or Food")
		fs.Parse(os.Args[2:])

		p, err := client.CreateProduct(ctx, catalogclient.ProductInput{
			Name:      *name,
			Price:     *price,
			DateAdded: *date,
			Category:  *category,
		})
		if err != nil {
			log.Fatal(err)
		}
		printJSON(p)

	case "update":
		id := idArg("update")
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		name := fs.String("name", "", "product name")
		price := fs.Float64("price", 0, "product price")
		date := fs.String("date", "", "date added (ISO-8601)")
		category := fs.String("category", "", "Electronics, Clothing or Food")
		fs.Parse(os.Args[3:])

		var patch catalogclient.ProductPatch
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				patch.Name = name
			case "price":
				patch.Price = price
			case "date":
				patch.DateAdded = date
			case "category":
				patch.Category = category
			}
		})

		p, err := client.UpdateProduct(ctx, id, patch)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(p)

	case "delete":
		p, err := client.DeleteProduct(ctx, idArg("delete"))
		if err != nil {
			log.Fatal(err)
		}
		printJSON(p)

	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func credentialFlags(name string) (string, string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	fs.Parse(os.Args[2:])
	if *username == "" || *password == "" {
		log.Fatalf("%s: -u and -p are required", name)
	}
	return *username, *password
}

func idArg(name string) int {
	if len(os.Args) < 3 {
		log.Fatalf("%s: product id required", name)
	}
	id, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatalf("%s: id must be an integer: %v", name, err)
	}
	return id
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
}
