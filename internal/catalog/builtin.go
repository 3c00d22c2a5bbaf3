package catalog

import "fmt"

var foods = []Item{
	{ID: "burger", Name: "Burger", Category: "meat", Serving: "1 piece", Magnitude: Float(45), Icon: "🍔",
		Description: "When you eat a burger, the carbs from the buns and sauces quickly break down into sugar."},
	{ID: "tacos", Name: "Tacos", Category: "meat", Serving: "2 pieces", Magnitude: Float(40), Icon: "🌮",
		Description: "Tacos with tortillas and fillings can cause a moderate blood sugar spike from the carbohydrates."},
	{ID: "soda", Name: "Soda", Category: "drink", Serving: "12 oz", Magnitude: Float(35), PeakTime: 0.5, Duration: 2.0, Icon: "🥤",
		Description: "Sugary drinks are absorbed quickly, causing a rapid spike in blood glucose levels."},
	{ID: "30-min-run", Name: "30 min run", Category: "exercise", Serving: "30 minutes", Magnitude: Float(-25), Icon: "🏃",
		Description: "Exercise helps muscles use glucose for energy, lowering blood sugar levels naturally."},
	{ID: "chicken", Name: "Chicken", Category: "meat", Serving: "4 oz", Magnitude: Float(5), Icon: "🍗",
		Description: "Lean proteins like chicken have minimal impact on blood sugar as they contain very few carbs."},
	{ID: "white-rice", Name: "White Rice", Category: "grain", Serving: "1 cup", Magnitude: Float(40), PeakTime: 0.75, Duration: 2.0, Icon: "🍚",
		Description: "White rice is quickly digested and converted to glucose, causing a significant blood sugar rise."},
	{ID: "broccoli", Name: "Broccoli", Category: "vegetable", Serving: "1 cup", Magnitude: Float(5), Icon: "🥦",
		Description: "Non-starchy vegetables like broccoli are high in fiber and have very little impact on blood sugar."},
	{ID: "apple", Name: "Apple", Category: "fruit", Serving: "1 medium", Magnitude: Float(15), PeakTime: 1.5, Icon: "🍎",
		Description: "Apples contain natural sugars and fiber, causing a gentle, sustained rise in blood glucose."},
	{ID: "whole-wheat-bread", Name: "Whole Wheat Bread", Category: "grain", Serving: "2 slices", Magnitude: Float(30), Icon: "🍞",
		Description: "Whole grain breads digest more slowly than white bread but still raise blood sugar moderately."},
	{ID: "artichoke", Name: "Artichoke", Category: "vegetable", Serving: "1 medium", Magnitude: Float(8), Icon: "🥬",
		Description: "Artichokes have moderate fiber and carbs, causing minimal glucose rise in diabetes."},
	{ID: "arugula", Name: "Arugula", Category: "vegetable", Serving: "2 cups raw", Magnitude: Float(2), Icon: "🥬",
		Description: "Leafy greens like arugula have almost no carbs, keeping glucose stable."},
	{ID: "asparagus", Name: "Asparagus", Category: "vegetable", Serving: "1 cup cooked", Magnitude: Float(5), Icon: "🥦",
		Description: "Asparagus is low in carbs with good fiber, causing minimal glucose impact."},
	{ID: "avocado", Name: "Avocado", Category: "healthy-fat", Serving: "1/2 avocado", Magnitude: Float(3), Icon: "🥑",
		Description: "Avocados are mostly healthy fats with very few carbs, barely affecting glucose."},
	{ID: "bacon", Name: "Bacon", Category: "processed-meat", Serving: "3 strips", Magnitude: Float(5), Icon: "🥓",
		Description: "Bacon's high fat content minimizes glucose impact, though cured meats may affect insulin sensitivity."},
	{ID: "bagel", Name: "Bagel", Category: "refined-grain", Serving: "1/2 bagel", Magnitude: Float(45), Icon: "🥯",
		Description: "Bagels are dense in refined carbs, causing significant glucose spikes."},
}

var glycemicIndexModules = []Module{
	{ID: "fruits", Name: "Fruits", Icon: "🍓", Items: []Item{
		{ID: "apple", Name: "Apple", PeakTime: 1.5, PeakValue: Float(145), Duration: 3.0, Icon: "🍎",
			Description: "Apples have fructose and fiber which helps offset the blood sugar increase."},
		{ID: "banana", Name: "Banana", PeakTime: 1.0, PeakValue: Float(160), Duration: 2.5, Icon: "🍌",
			Description: "Bananas cause a moderate rise in blood sugar due to natural sugars."},
		{ID: "grapes", Name: "Grapes", PeakTime: 0.8, PeakValue: Float(170), Duration: 2.0, Icon: "🍇",
			Description: "Grapes can cause rapid blood sugar spikes due to high sugar content."},
	}},
	{ID: "vegetables", Name: "Vegetables", Icon: "🥕", Items: []Item{
		{ID: "carrot", Name: "Carrot", PeakTime: 1.1, PeakValue: Float(130), Duration: 2.5, Icon: "🥕",
			Description: "Carrots have natural sugars but fiber slows absorption."},
		{ID: "broccoli", Name: "Broccoli", PeakTime: 0.5, PeakValue: Float(110), Duration: 1.5, Icon: "🥦",
			Description: "Broccoli has minimal impact on blood sugar."},
		{ID: "corn", Name: "Corn", PeakTime: 1.3, PeakValue: Float(155), Duration: 2.8, Icon: "🌽",
			Description: "Corn is higher in starch and can raise blood sugar significantly."},
	}},
	{ID: "grains", Name: "Grains", Icon: "🍞", Items: []Item{
		{ID: "white-rice", Name: "White Rice", PeakTime: 0.75, PeakValue: Float(190), Duration: 2, Icon: "🍚",
			Description: "White rice has a high glycemic index, causing rapid blood sugar spikes."},
		{ID: "brown-rice", Name: "Brown Rice", PeakTime: 1.5, PeakValue: Float(155), Duration: 3.5, Icon: "🍚",
			Description: "Brown rice has more fiber than white rice, causing a slower glucose rise."},
		{ID: "quinoa", Name: "Quinoa", PeakTime: 1.2, PeakValue: Float(140), Duration: 3.0, Icon: "🌾",
			Description: "Quinoa is a protein-rich grain with moderate glucose impact."},
	}},
}

var ketoneModules = []Module{
	{ID: "dietary-ketosis", Name: "Dietary Ketosis", Icon: "🥑",
		Instructions: "Learn how different dietary approaches affect ketone production.",
		Items: []Item{
			{ID: "keto-meal", Name: "Keto Meal", PeakTime: 3.0, PeakValue: Float(1.2), Duration: 6.0, ImpactStart: Float(1.0), Icon: "🥑",
				Description: "High-fat, low-carb meals can increase ketone production over several hours."},
			{ID: "intermittent-fasting", Name: "Intermittent Fasting", PeakTime: 12.0, PeakValue: Float(0.8), Duration: 16.0, ImpactStart: Float(8.0), Icon: "⏰",
				Description: "Extended fasting periods naturally increase ketone production."},
			{ID: "carb-meal", Name: "High-Carb Meal", PeakTime: 2.0, PeakValue: Float(0.1), Duration: 8.0, ImpactStart: Float(0.5), Icon: "🍞",
				Description: "Carbohydrate intake suppresses ketone production significantly."},
			{ID: "mct-oil", Name: "MCT Oil", PeakTime: 1.0, PeakValue: Float(0.6), Duration: 3.0, ImpactStart: Float(0.25), Icon: "🥥",
				Description: "Medium-chain triglycerides can rapidly increase ketone levels."},
		}},
	{ID: "exercise-ketosis", Name: "Exercise & Ketones", Icon: "🏃",
		Instructions: "Discover how different types of exercise affect ketone levels.",
		Items: []Item{
			{ID: "aerobic-exercise", Name: "Aerobic Exercise", PeakTime: 1.5, PeakValue: Float(0.4), Duration: 4.0, ImpactStart: Float(0.5), Icon: "🏃",
				Description: "Steady aerobic exercise can modestly increase ketone production."},
			{ID: "hiit-workout", Name: "HIIT Workout", PeakTime: 2.0, PeakValue: Float(0.3), Duration: 3.0, ImpactStart: Float(1.0), Icon: "💪",
				Description: "High-intensity training may temporarily increase ketones."},
			{ID: "strength-training", Name: "Strength Training", PeakTime: 1.0, PeakValue: Float(0.2), Duration: 2.0, ImpactStart: Float(0.5), Icon: "🏋",
				Description: "Weight training has minimal impact on ketone production."},
			{ID: "yoga", Name: "Yoga/Meditation", PeakTime: 0.5, PeakValue: Float(0.25), Duration: 2.0, ImpactStart: Float(0.25), Icon: "🧘",
				Description: "Gentle movement and stress reduction may support ketosis."},
		}},
	{ID: "metabolic-states", Name: "Metabolic States", Icon: "⚡",
		Instructions: "Understand how different metabolic conditions affect ketones.",
		Items: []Item{
			{ID: "nutritional-ketosis", Name: "Nutritional Ketosis", PeakTime: 24.0, PeakValue: Float(1.5), Duration: 48.0, ImpactStart: Float(12.0), Icon: "📊",
				Description: "Sustained ketogenic diet maintains steady ketone levels."},
			{ID: "dawn-phenomenon", Name: "Morning Rise", PeakTime: 1.0, PeakValue: Float(0.6), Duration: 3.0, ImpactStart: Float(0.0), Icon: "🌅",
				Description: "Natural morning hormone changes can affect ketone levels."},
			{ID: "stress-response", Name: "Stress Response", PeakTime: 0.5, PeakValue: Float(0.3), Duration: 2.0, ImpactStart: Float(0.0), Icon: "😰",
				Description: "Acute stress can temporarily alter ketone production."},
			{ID: "sleep-deprivation", Name: "Sleep Deprivation", PeakTime: 6.0, PeakValue: Float(0.15), Duration: 12.0, ImpactStart: Float(2.0), Icon: "😴",
				Description: "Poor sleep can disrupt metabolic processes including ketosis."},
		}},
}

var pageModules = map[string][]Module{
	"glycemic-index": glycemicIndexModules,
	"ketones":        ketoneModules,
}

// Default returns the built-in item library.
func Default() *Catalog {
	c, err := New(foods, nil)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// Modules returns the built-in learning modules of a page.
func Modules(page string) ([]Module, error) {
	mods, ok := pageModules[page]
	if !ok {
		return nil, fmt.Errorf("%s: %w", page, ErrUnknownModule)
	}
	out := make([]Module, len(mods))
	copy(out, mods)
	return out, nil
}

// ModulePages lists the pages that ship learning modules.
func ModulePages() []string {
	return []string{"glycemic-index", "ketones"}
}
