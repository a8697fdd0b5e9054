package catalog

// SeedItems returns the built-in travel-friendly menu. External catalog rows
// are merged on top of it at startup.
func SeedItems() []MenuItem {
	out := make([]MenuItem, len(seedMenu))
	for i, it := range seedMenu {
		out[i] = it.clone()
	}
	return out
}

func item(name, chain, cuisine string, k, p, c, f int) MenuItem {
	return MenuItem{Name: name, Chain: chain, Cuisine: cuisine, Calories: k, ProteinG: p, CarbsG: c, FatG: f}
}

var seedMenu = []MenuItem{
	item("Burrito Bowl: chicken, fajita veg, brown rice (light), pico, salsa, lettuce", "Chipotle", "Mexican", 540, 48, 58, 14),
	item("Salad Bowl: steak, black beans, pico, tomatillo salsa", "Chipotle", "Mexican", 430, 42, 33, 14),
	item("Grilled Nuggets (12 ct) + Side Salad (lite dressing)", "Chick-fil-A", "American", 360, 46, 18, 12),
	item("Egg White & Roasted Red Pepper Egg Bites", "Starbucks", "Cafe", 170, 13, 11, 7),
	item("6\" Turkey on wheat, double meat, loaded veg, no cheese", "Subway", "Sandwiches", 420, 34, 54, 8),
	item("Bowl: Grilled Teriyaki Chicken + Super Greens", "Panda Express", "Chinese", 420, 36, 26, 18),
	item("Lifestyle Bowl: double chicken, white rice, black beans, tomatillo, lettuce, guac", "Chipotle", "Mexican", 760, 65, 66, 24),
	item("Footlong Turkey (double meat) on wheat, cheese, full condiments", "Subway", "Sandwiches", 720, 55, 78, 20),
	item("Orange Chicken + Super Greens (plate) + extra chicken", "Panda Express", "Chinese", 780, 45, 75, 30),
	item("Grilled Chicken Club Sandwich + small fries", "Chick-fil-A", "American", 830, 44, 74, 39),
	item("Protein smoothie: whey double scoop + peanut butter + banana + oats (16 oz)", "Grocery", "Any", 700, 55, 70, 22),
	item("Steak Bowl: extra steak, white rice, fajita veggies, mild salsa", "Chipotle", "Mexican", 700, 55, 60, 22),
	item("Keto Bowl: double chicken, fajita veg, cheese, sour cream (no rice/beans)", "Chipotle", "Mexican", 520, 60, 16, 22),
	item("Grilled Chicken Sandwich + Fruit Cup", "Chick-fil-A", "American", 520, 35, 65, 10),
	item("Cobb Salad (grilled) + lite dressing", "Chick-fil-A", "American", 510, 40, 28, 24),
	item("12ct Grilled Nuggets + Greek Yogurt Parfait", "Chick-fil-A", "American", 540, 52, 45, 12),
	item("Protein Oatmeal: oatmeal + whey packet + banana", "Starbucks", "Cafe", 560, 32, 82, 12),
	item("Turkey Bacon Cheddar Egg White Sandwich + plain oatmeal", "Starbucks", "Cafe", 530, 30, 65, 14),
	item("Double-Smoked Bacon & Cheddar Sandwich", "Starbucks", "Cafe", 500, 25, 45, 25),
	item("Footlong Turkey (double meat) on wheat, loaded veg", "Subway", "Sandwiches", 720, 55, 78, 20),
	item("Footlong Rotisserie Chicken, no mayo", "Subway", "Sandwiches", 760, 60, 86, 16),
	item("Protein Bowl: double chicken + extra veg", "Subway", "Sandwiches", 480, 60, 20, 14),
	item("Plate: Grilled Teriyaki Chicken + Super Greens + Mushroom Chicken", "Panda Express", "Chinese", 780, 54, 45, 32),
	item("Bowl: Shanghai Angus Steak + Super Greens", "Panda Express", "Chinese", 520, 26, 30, 24),
	item("Orange Chicken (1 entree) + Super Greens bowl", "Panda Express", "Chinese", 600, 26, 46, 28),
	item("Power Menu Bowl (Chicken)", "Taco Bell", "Mexican", 480, 26, 50, 17),
	item("2x Chicken Soft Taco (fresco) + Bean Burrito (fresco)", "Taco Bell", "Mexican", 820, 40, 110, 22),
	item("Burrito Bowl: double chicken, rice + beans, salsa, lettuce", "QDOBA", "Mexican", 780, 65, 70, 22),
	item("Chicken Burrito (no queso) + extra chicken", "QDOBA", "Mexican", 790, 60, 84, 20),
	item("Quarter Pounder (no cheese) + side salad (no dressing)", "McDonald's", "American", 530, 30, 40, 25),
	item("2x Egg McMuffin (no cheese)", "McDonald's", "American", 500, 32, 60, 18),
	item("McDouble + apple slices", "McDonald's", "American", 460, 24, 44, 20),
	item("Grilled Chicken Sandwich + plain baked potato", "Wendy's", "American", 680, 45, 93, 12),
	item("Large Chili + Grilled Chicken Wrap", "Wendy's", "American", 670, 52, 63, 19),
	item("Green Goddess Cobb with Chicken (full)", "Panera", "American", 500, 40, 30, 23),
	item("Turkey Avocado BLT (half) + Turkey Chili (cup)", "Panera", "American", 720, 45, 60, 28),
	item("Grilled Chicken breast + corn + green beans", "KFC", "American", 460, 50, 45, 9),
	item("Blackened Tenders (5) + Red Beans & Rice", "Popeyes", "American", 610, 45, 54, 20),
	item("Single ShackBurger + side salad", "Shake Shack", "American", 700, 33, 48, 40),
	item("Little Hamburger + small fries (shared half)", "Five Guys", "American", 900, 35, 60, 50),
	item("Hot Bar: grilled salmon (8 oz) + brown rice cup + broccoli", "Whole Foods", "Any", 750, 50, 60, 24),
	item("Chicken Avocado Salad + Greek yogurt", "Pret a Manger", "Cafe", 620, 38, 40, 26),
	item("Protein Smoothie: whey double scoop + peanut butter + banana + oats", "Grocery", "Any", 700, 55, 70, 22),
	item("Greek yogurt (2 cups) + 1/2 cup granola + 1 tbsp honey", "Grocery", "Any", 610, 40, 80, 12),
	item("Cottage cheese (2 cups) + berries + mixed nuts (1 oz)", "Grocery", "Any", 520, 45, 40, 18),
	item("Rotisserie chicken (10 oz) + microwave potato", "Grocery", "Any", 680, 75, 50, 18),
	item("2 cans tuna + avocado + 2 whole-wheat wraps", "Grocery", "Any", 640, 55, 50, 22),
	item("Jerky (3 oz) + trail mix (1 oz) + apple", "Grocery", "Any", 520, 35, 50, 18),
	item("Protein oatmeal: oats + whey + peanut butter", "Grocery", "Any", 560, 40, 55, 16),
	item("High-protein frozen burrito", "Grocery", "Any", 450, 33, 50, 12),
	item("Sushi: 2x spicy tuna rolls", "Grocery", "Any", 640, 34, 80, 18),
	item("Fairlife 42g shake + 2 bananas + nut pack (1 oz)", "Gas Station", "Any", 600, 42, 95, 15),
	item("Egg-white veggie omelette + fruit + dry toast", "IHOP", "American", 620, 45, 68, 14),
	item("Fit Slam: egg whites + turkey bacon + English muffin + fruit", "Denny's", "American", 650, 40, 70, 20),
}
