package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// cartLine is one pending line of the order being built
type cartLine struct {
	menuItemID    string
	itemName      string
	variantID     string
	variationName string
	price         float64
	quantity      int
}

// Model defines the application state
type Model struct {
	mainMenu      list.Model
	menuItemList  list.Model
	variationList list.Model
	orderList     list.Model
	inventoryView table.Model
	stockSummary  string
	orderDetail   Order
	cart          []cartLine
	selectedItem  MenuItem
	commentInput  textinput.Model
	spinner       spinner.Model
	client        *ApiClient
	currentView   string
	status        string
	error         string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Place Order", desc: "Browse the menu and build an order"},
		item{title: "Cart", desc: "Review and submit the current order"},
		item{title: "Orders", desc: "View submitted orders"},
		item{title: "Inventory", desc: "Check ingredient stock levels"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "ChowHub Back Office"

	// Initialize menu item list view
	menuItemList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	menuItemList.Title = "Menu"

	// Initialize variation list view
	variationList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	variationList.Title = "Variations"

	// Initialize order list view
	orderList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	orderList.Title = "Submitted Orders"

	// Initialize inventory view
	columns := []table.Column{
		{Title: "Ingredient", Width: 24},
		{Title: "Unit", Width: 8},
		{Title: "Quantity", Width: 10},
		{Title: "Stock", Width: 10},
	}
	inventoryTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	// Initialize comment input
	ci := textinput.New()
	ci.Placeholder = "Order comment (optional)..."
	ci.CharLimit = 156
	ci.Width = 40

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:      mainMenu,
		menuItemList:  menuItemList,
		variationList: variationList,
		orderList:     orderList,
		inventoryView: inventoryTable,
		commentInput:  ci,
		spinner:       s,
		client:        client,
		currentView:   "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.commentInput.Focused() {
				return m, tea.Quit
			}
		case "enter":
			switch m.currentView {
			case "main":
				if selected, ok := m.mainMenu.SelectedItem().(item); ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Place Order":
						m.currentView = "menu"
						return m, fetchMenu(m.client)
					case "Cart":
						m.currentView = "cart"
						m.commentInput.Focus()
					case "Orders":
						m.currentView = "orders"
						return m, fetchOrders(m.client)
					case "Inventory":
						m.currentView = "inventory"
						return m, fetchInventory(m.client)
					}
				}
			case "menu":
				if selected, ok := m.menuItemList.SelectedItem().(menuEntry); ok {
					m.selectedItem = selected.item
					m.variationList.Title = selected.item.Name
					m.variationList.SetItems(convertVariationsToItems(selected.item))
					m.currentView = "variation"
				}
			case "variation":
				if selected, ok := m.variationList.SelectedItem().(variationEntry); ok {
					m.cart = addToCart(m.cart, m.selectedItem, selected.variation)
					m.status = fmt.Sprintf("Added %s (%s) to cart", m.selectedItem.Name, selected.variation.Name)
					m.currentView = "menu"
				}
			case "cart":
				return m, submitOrder(m.client, m.cart, m.commentInput.Value())
			case "orders":
				if selected, ok := m.orderList.SelectedItem().(orderEntry); ok {
					m.orderDetail = selected.order
					m.currentView = "order_detail"
				}
			case "order_detail":
				m.currentView = "orders"
			}
		case "esc":
			switch m.currentView {
			case "variation":
				m.currentView = "menu"
			case "order_detail":
				m.currentView = "orders"
			default:
				if m.currentView != "main" {
					m.commentInput.Blur()
					m.currentView = "main"
				}
			}
		case "x":
			if m.currentView == "cart" && !m.commentInput.Focused() && len(m.cart) > 0 {
				m.cart = m.cart[:len(m.cart)-1]
			}
		}
	case menuMsg:
		m.menuItemList.SetItems(convertMenuToItems(msg.items))
		return m, nil
	case ordersMsg:
		m.orderList.SetItems(convertOrdersToItems(msg.orders))
		return m, nil
	case inventoryMsg:
		m.inventoryView.SetRows(convertInventoryToRows(msg.page.Ingredients))
		m.stockSummary = fmt.Sprintf("%d ingredients, %d low, %d critical",
			msg.page.Total, msg.page.TotalLowStock, msg.page.TotalCriticalStock)
		return m, nil
	case receiptMsg:
		m.cart = nil
		m.commentInput.SetValue("")
		m.commentInput.Blur()
		m.error = ""
		m.status = fmt.Sprintf("Order %s accepted. Total $%.2f (tax $%.2f)",
			msg.receipt.OrderID, msg.receipt.Total, msg.receipt.Tax)
		m.currentView = "main"
		return m, nil
	case errorMsg:
		m.error = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "menu":
		m.menuItemList, cmd = m.menuItemList.Update(msg)
	case "variation":
		m.variationList, cmd = m.variationList.Update(msg)
	case "orders":
		m.orderList, cmd = m.orderList.Update(msg)
	case "inventory":
		m.inventoryView, cmd = m.inventoryView.Update(msg)
	case "cart":
		m.commentInput, cmd = m.commentInput.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		view := m.mainMenu.View()
		if m.status != "" {
			view += "\n" + successStyle.Render(m.status)
		}
		return docStyle.Render(view)
	case "menu":
		help := fmt.Sprintf("\nCart: %d lines. Press 'enter' to pick a variation, 'esc' for the main menu\n", len(m.cart))
		if m.status != "" {
			help += infoStyle.Render(m.status) + "\n"
		}
		return docStyle.Render(m.menuItemList.View() + help)
	case "variation":
		return docStyle.Render(m.variationList.View() + "\nPress 'enter' to add to cart, 'esc' to go back\n")
	case "cart":
		help := "\nPress 'enter' to submit, 'x' to drop the last line, 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Cart") + "\n\n" + cartView(m.cart) + "\n" + m.commentInput.View() + help)
	case "orders":
		help := "\nPress 'enter' to view details, 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(m.orderList.View() + help)
	case "order_detail":
		return docStyle.Render(orderDetailView(m.orderDetail))
	case "inventory":
		view := titleStyle.Render("Inventory") + "\n\n" + m.inventoryView.View()
		if m.stockSummary != "" {
			view += "\n" + infoStyle.Render(m.stockSummary)
		}
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error)
		}
		return docStyle.Render(view)
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type menuMsg struct {
	items []MenuItem
}

type ordersMsg struct {
	orders []Order
}

type inventoryMsg struct {
	page *InventoryPage
}

type receiptMsg struct {
	receipt *OrderReceipt
}

type errorMsg struct {
	err string
}

// menuEntry represents a menu item in the list
type menuEntry struct {
	item MenuItem
}

func (e menuEntry) Title() string { return e.item.Name }
func (e menuEntry) Description() string {
	desc := fmt.Sprintf("%s - %d variations", e.item.Category, len(e.item.Variations))
	if e.item.IsInventoryControlled {
		desc += " - stock tracked"
	}
	return desc
}
func (e menuEntry) FilterValue() string { return e.item.Name }

// variationEntry represents a variation in the list
type variationEntry struct {
	variation Variation
}

func (e variationEntry) Title() string       { return e.variation.Name }
func (e variationEntry) Description() string { return fmt.Sprintf("$%.2f", e.variation.Price) }
func (e variationEntry) FilterValue() string { return e.variation.Name }

// orderEntry represents an order in the list
type orderEntry struct {
	order Order
}

func (e orderEntry) Title() string { return fmt.Sprintf("Order %s", e.order.ID) }
func (e orderEntry) Description() string {
	return fmt.Sprintf("%d lines - $%.2f - %s", len(e.order.LineItems), e.order.Total, e.order.CreatedAt.Format(time.Kitchen))
}
func (e orderEntry) FilterValue() string { return e.order.ID }

// fetchMenu retrieves the menu catalog from the API
func fetchMenu(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetMenuItems()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching menu: %v", err)}
		}
		return menuMsg{items: items}
	}
}

// fetchOrders retrieves submitted orders from the API
func fetchOrders(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.GetOrders()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching orders: %v", err)}
		}
		return ordersMsg{orders: orders}
	}
}

// fetchInventory retrieves the first inventory page from the API
func fetchInventory(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		page, err := client.GetInventory(1)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching inventory: %v", err)}
		}
		return inventoryMsg{page: page}
	}
}

// submitOrder sends the cart to the API for acceptance
func submitOrder(client *ApiClient, cart []cartLine, comment string) tea.Cmd {
	return func() tea.Msg {
		if len(cart) == 0 {
			return errorMsg{err: "Cart is empty"}
		}
		items := make([]OrderItemRequest, len(cart))
		for i, line := range cart {
			items[i] = OrderItemRequest{
				MenuItemID: line.menuItemID,
				VariantID:  line.variantID,
				Quantity:   line.quantity,
			}
		}
		receipt, err := client.SubmitOrder(items, comment)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error submitting order: %v", err)}
		}
		return receiptMsg{receipt: receipt}
	}
}

// addToCart appends one unit of the chosen variation, folding into an existing
// line when the same item and variation is already present.
func addToCart(cart []cartLine, item MenuItem, v Variation) []cartLine {
	for i := range cart {
		if cart[i].menuItemID == item.ID && cart[i].variantID == v.ID {
			cart[i].quantity++
			return cart
		}
	}
	return append(cart, cartLine{
		menuItemID:    item.ID,
		itemName:      item.Name,
		variantID:     v.ID,
		variationName: v.Name,
		price:         v.Price,
		quantity:      1,
	})
}

// convertMenuToItems converts API menu items to list items
func convertMenuToItems(items []MenuItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, m := range items {
		out[i] = menuEntry{item: m}
	}
	return out
}

// convertVariationsToItems converts an item's variations to list items
func convertVariationsToItems(m MenuItem) []list.Item {
	out := make([]list.Item, len(m.Variations))
	for i, v := range m.Variations {
		out[i] = variationEntry{variation: v}
	}
	return out
}

// convertOrdersToItems converts API orders to list items
func convertOrdersToItems(orders []Order) []list.Item {
	out := make([]list.Item, len(orders))
	for i, o := range orders {
		out[i] = orderEntry{order: o}
	}
	return out
}

// convertInventoryToRows converts ingredients to table rows
func convertInventoryToRows(ingredients []Ingredient) []table.Row {
	rows := make([]table.Row, len(ingredients))
	for i, ing := range ingredients {
		stock := "ok"
		if ing.Quantity <= ing.CriticalThreshold {
			stock = "critical"
		} else if ing.Quantity <= ing.LowThreshold {
			stock = "low"
		}
		rows[i] = table.Row{ing.Name, ing.Unit, fmt.Sprintf("%.2f", ing.Quantity), stock}
	}
	return rows
}

// cartView shows the current state of the order being built
func cartView(cart []cartLine) string {
	if len(cart) == 0 {
		return "No items added yet\n"
	}
	view := ""
	subtotal := 0.0
	for i, line := range cart {
		lineTotal := line.price * float64(line.quantity)
		subtotal += lineTotal
		view += fmt.Sprintf("%d. %s (%s) x%d - $%.2f\n", i+1, line.itemName, line.variationName, line.quantity, lineTotal)
	}
	tax := subtotal * 0.13
	view += fmt.Sprintf("\nSubtotal: $%.2f\nTax: $%.2f\nTotal: $%.2f\n", subtotal, tax, subtotal+tax)
	return view
}

// orderDetailView creates a detailed view of an order
func orderDetailView(order Order) string {
	view := titleStyle.Render(fmt.Sprintf("Order %s", order.ID)) + "\n\n"
	view += fmt.Sprintf("Placed: %s\n", order.CreatedAt.Format(time.RFC1123))
	if order.Comment != "" {
		view += fmt.Sprintf("Comment: %s\n", order.Comment)
	}

	view += "\nItems:\n"
	for i, line := range order.LineItems {
		view += fmt.Sprintf("%d. %s (%s) x%d - $%.2f\n", i+1, line.Name, line.VariationName, line.Quantity, line.SubTotal)
	}

	view += fmt.Sprintf("\nSubtotal: $%.2f\nTax: $%.2f\nTotal: $%.2f\n", order.Subtotal, order.Tax, order.Total)
	view += "\nPress 'enter' or 'esc' to go back to the list"

	return view
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
